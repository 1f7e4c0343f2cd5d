package triage

// DefaultCatalog returns the built-in panel rule table. Thresholds follow
// the clinic's laboratory reference sheet; every band boundary is strict
// unless the comparator says otherwise, and bands are ordered from most to
// least severe so the first match decides the finding.
//
// The catalog is deliberately incomplete: panels and fields it does not
// name produce no findings. Unknown data is a human-review problem, not an
// engine error.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultPanels())
}

func defaultPanels() []PanelRule {
	hbBands := []Band{
		{Op: "<", Bound: 6.0, Severity: SeverityCritical, Message: "life-threatening anemia"},
		{Op: "<", Bound: 8.0, Severity: SeverityCritical, Message: "severe anemia"},
		{Op: "<", Bound: 10.0, Severity: SeverityAbnormal, Message: "moderate anemia"},
		{Op: "<", Bound: 12.0, Severity: SeverityAbnormal, Message: "mild anemia"},
	}
	gradedPlus := func(mild, moderate, heavy string) []Token {
		return []Token{
			{Value: "+++", Severity: SeverityCritical, Message: heavy},
			{Value: "++", Severity: SeverityAbnormal, Message: moderate},
			{Value: "+", Severity: SeverityAbnormal, Message: mild},
		}
	}
	positive := func(sev Severity, msg string) []Token {
		return []Token{{Value: "positive", Exact: true, Severity: sev, Message: msg}}
	}

	return []PanelRule{
		{
			Panel: "Complete Blood Count (CBC)",
			Fields: []FieldRule{
				{Field: "Hemoglobin Level", Bands: hbBands},
				{Field: "White Blood Cells", Bands: []Band{
					{Op: "<", Bound: 1.0, Severity: SeverityCritical, Message: "profound leukopenia"},
					{Op: ">", Bound: 30.0, Severity: SeverityCritical, Message: "marked leukocytosis"},
					{Op: "<", Bound: 4.0, Severity: SeverityAbnormal, Message: "leukopenia"},
					{Op: ">", Bound: 11.0, Severity: SeverityAbnormal, Message: "leukocytosis"},
				}},
				{Field: "Platelet Count", Bands: []Band{
					{Op: "<", Bound: 20, Severity: SeverityCritical, Message: "critical thrombocytopenia, bleeding risk"},
					{Op: "<", Bound: 50, Severity: SeverityCritical, Message: "severe thrombocytopenia"},
					{Op: ">", Bound: 1000, Severity: SeverityCritical, Message: "extreme thrombocytosis"},
					{Op: "<", Bound: 150, Severity: SeverityAbnormal, Message: "thrombocytopenia"},
					{Op: ">", Bound: 450, Severity: SeverityAbnormal, Message: "thrombocytosis"},
				}},
				{Field: "Hematocrit", Bands: []Band{
					{Op: "<", Bound: 18, Severity: SeverityCritical, Message: "critically low hematocrit"},
					{Op: ">", Bound: 60, Severity: SeverityCritical, Message: "critically high hematocrit"},
					{Op: "<", Bound: 30, Severity: SeverityAbnormal, Message: "low hematocrit"},
				}},
			},
		},
		{
			Panel: "Hemoglobin (HB)",
			Fields: []FieldRule{
				{Field: "Hemoglobin Level", Bands: hbBands},
			},
		},
		{
			Panel: "Blood Film for Malaria (BFFM)",
			Fields: []FieldRule{
				{Field: "Malaria Parasites", Tokens: []Token{
					{Value: "falciparum", Severity: SeverityCritical, Message: "P. falciparum parasitaemia"},
					{Value: "vivax", Severity: SeverityAbnormal, Message: "P. vivax parasitaemia"},
					{Value: "ovale", Severity: SeverityAbnormal, Message: "P. ovale parasitaemia"},
					{Value: "malariae", Severity: SeverityAbnormal, Message: "P. malariae parasitaemia"},
					{Value: "seen", Exact: true, Severity: SeverityAbnormal, Message: "malaria parasites seen"},
				}},
				{Field: "Gametocytes", Tokens: []Token{
					{Value: "seen", Exact: true, Severity: SeverityAbnormal, Message: "gametocytes present"},
				}},
				{Field: "Parasite Density", Tokens: []Token{
					{Value: "+++", Severity: SeverityCritical, Message: "hyperparasitaemia"},
					{Value: "++", Severity: SeverityAbnormal, Message: "moderate parasite density"},
					{Value: "+", Severity: SeverityAbnormal, Message: "low parasite density"},
				}},
			},
		},
		{
			Panel: "Malaria Rapid Diagnostic Test (MRDT)",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityCritical, "malaria antigen detected")},
			},
		},
		{
			Panel: "Urine Analysis",
			Fields: []FieldRule{
				{Field: "Protein", Tokens: gradedPlus("mild proteinuria", "moderate proteinuria", "heavy proteinuria")},
				{Field: "Glucose", Tokens: gradedPlus("glycosuria", "moderate glycosuria", "marked glycosuria")},
				{Field: "Ketones", Tokens: gradedPlus("ketonuria", "moderate ketonuria", "severe ketonuria, possible ketoacidosis")},
				{Field: "Blood", Tokens: []Token{
					{Value: "+++", Severity: SeverityAbnormal, Message: "marked haematuria"},
					{Value: "++", Severity: SeverityAbnormal, Message: "moderate haematuria"},
					{Value: "+", Severity: SeverityAbnormal, Message: "haematuria"},
				}},
				{Field: "Nitrite", Tokens: positive(SeverityAbnormal, "possible urinary tract infection")},
				{Field: "Leucocytes", Tokens: []Token{
					{Value: "+++", Severity: SeverityAbnormal, Message: "marked leucocyturia"},
					{Value: "++", Severity: SeverityAbnormal, Message: "moderate leucocyturia"},
					{Value: "+", Severity: SeverityAbnormal, Message: "leucocyturia"},
				}},
			},
			Combos: []ComboRule{
				{
					When: []ComboCondition{
						{Field: "Protein", Contains: "+"},
						{Field: "Glucose", Contains: "+"},
					},
					Field:    "Protein",
					Severity: SeverityAbnormal,
					Message:  "proteinuria with glycosuria, assess for diabetic nephropathy",
				},
			},
		},
		{
			Panel: "Urine Microscopy",
			Fields: []FieldRule{
				{Field: "Pus Cells", Bands: []Band{
					{Op: ">", Bound: 50, Severity: SeverityCritical, Message: "gross pyuria"},
					{Op: ">", Bound: 5, Severity: SeverityAbnormal, Message: "pyuria"},
				}},
				{Field: "Red Blood Cells", Bands: []Band{
					{Op: ">", Bound: 3, Severity: SeverityAbnormal, Message: "microscopic haematuria"},
				}},
				{Field: "Ova and Cysts", Tokens: []Token{
					{Value: "schistosoma", Severity: SeverityAbnormal, Message: "schistosoma ova seen"},
					{Value: "seen", Exact: true, Severity: SeverityAbnormal, Message: "parasitic ova seen"},
				}},
			},
		},
		{
			Panel: "Renal Function Test (RFT)",
			Fields: []FieldRule{
				{Field: "Creatinine", Bands: []Band{
					{Op: ">", Bound: 700, Severity: SeverityCritical, Message: "severe renal impairment"},
					{Op: ">", Bound: 120, Severity: SeverityAbnormal, Message: "elevated creatinine"},
				}},
				{Field: "Urea", Bands: []Band{
					{Op: ">", Bound: 30, Severity: SeverityCritical, Message: "uraemia"},
					{Op: ">", Bound: 8.3, Severity: SeverityAbnormal, Message: "elevated urea"},
				}},
				{Field: "Potassium", Bands: []Band{
					{Op: "<", Bound: 2.5, Severity: SeverityCritical, Message: "critical hypokalaemia"},
					{Op: ">", Bound: 6.5, Severity: SeverityCritical, Message: "critical hyperkalaemia"},
					{Op: "<", Bound: 3.5, Severity: SeverityAbnormal, Message: "hypokalaemia"},
					{Op: ">", Bound: 5.5, Severity: SeverityAbnormal, Message: "hyperkalaemia"},
				}},
				{Field: "Sodium", Bands: []Band{
					{Op: "<", Bound: 120, Severity: SeverityCritical, Message: "critical hyponatraemia"},
					{Op: ">", Bound: 160, Severity: SeverityCritical, Message: "critical hypernatraemia"},
					{Op: "<", Bound: 135, Severity: SeverityAbnormal, Message: "hyponatraemia"},
					{Op: ">", Bound: 145, Severity: SeverityAbnormal, Message: "hypernatraemia"},
				}},
			},
		},
		{
			Panel: "Serum Electrolytes",
			Fields: []FieldRule{
				{Field: "Potassium", Bands: []Band{
					{Op: "<", Bound: 2.5, Severity: SeverityCritical, Message: "critical hypokalaemia"},
					{Op: ">", Bound: 6.5, Severity: SeverityCritical, Message: "critical hyperkalaemia"},
					{Op: "<", Bound: 3.5, Severity: SeverityAbnormal, Message: "hypokalaemia"},
					{Op: ">", Bound: 5.5, Severity: SeverityAbnormal, Message: "hyperkalaemia"},
				}},
				{Field: "Sodium", Bands: []Band{
					{Op: "<", Bound: 120, Severity: SeverityCritical, Message: "critical hyponatraemia"},
					{Op: ">", Bound: 160, Severity: SeverityCritical, Message: "critical hypernatraemia"},
					{Op: "<", Bound: 135, Severity: SeverityAbnormal, Message: "hyponatraemia"},
					{Op: ">", Bound: 145, Severity: SeverityAbnormal, Message: "hypernatraemia"},
				}},
				{Field: "Chloride", Bands: []Band{
					{Op: "<", Bound: 90, Severity: SeverityAbnormal, Message: "hypochloraemia"},
					{Op: ">", Bound: 110, Severity: SeverityAbnormal, Message: "hyperchloraemia"},
				}},
			},
		},
		{
			Panel: "Liver Function Test (LFT)",
			Fields: []FieldRule{
				{Field: "ALT", Bands: []Band{
					{Op: ">", Bound: 1000, Severity: SeverityCritical, Message: "fulminant hepatocellular injury"},
					{Op: ">", Bound: 40, Severity: SeverityAbnormal, Message: "elevated ALT"},
				}},
				{Field: "AST", Bands: []Band{
					{Op: ">", Bound: 1000, Severity: SeverityCritical, Message: "fulminant hepatocellular injury"},
					{Op: ">", Bound: 40, Severity: SeverityAbnormal, Message: "elevated AST"},
				}},
				{Field: "Total Bilirubin", Bands: []Band{
					{Op: ">", Bound: 300, Severity: SeverityCritical, Message: "severe jaundice"},
					{Op: ">", Bound: 21, Severity: SeverityAbnormal, Message: "hyperbilirubinaemia"},
				}},
				{Field: "Albumin", Bands: []Band{
					{Op: "<", Bound: 20, Severity: SeverityAbnormal, Message: "severe hypoalbuminaemia"},
					{Op: "<", Bound: 35, Severity: SeverityAbnormal, Message: "hypoalbuminaemia"},
				}},
			},
		},
		{
			Panel: "Random Blood Sugar (RBS)",
			Fields: []FieldRule{
				{Field: "Glucose Level", Bands: []Band{
					{Op: "<", Bound: 2.2, Severity: SeverityCritical, Message: "severe hypoglycaemia"},
					{Op: ">", Bound: 33.3, Severity: SeverityCritical, Message: "extreme hyperglycaemia"},
					{Op: "<", Bound: 3.9, Severity: SeverityAbnormal, Message: "hypoglycaemia"},
					{Op: ">", Bound: 11.1, Severity: SeverityAbnormal, Message: "hyperglycaemia"},
				}},
			},
		},
		{
			Panel: "Fasting Blood Sugar (FBS)",
			Fields: []FieldRule{
				{Field: "Glucose Level", Bands: []Band{
					{Op: "<", Bound: 2.2, Severity: SeverityCritical, Message: "severe hypoglycaemia"},
					{Op: ">", Bound: 16.7, Severity: SeverityCritical, Message: "marked fasting hyperglycaemia"},
					{Op: "<", Bound: 3.9, Severity: SeverityAbnormal, Message: "hypoglycaemia"},
					{Op: ">", Bound: 7.0, Severity: SeverityAbnormal, Message: "impaired fasting glucose"},
				}},
			},
		},
		{
			Panel: "Glycated Hemoglobin (HbA1c)",
			Fields: []FieldRule{
				{Field: "HbA1c", Bands: []Band{
					{Op: ">", Bound: 14, Severity: SeverityCritical, Message: "very poor glycaemic control"},
					{Op: ">", Bound: 6.5, Severity: SeverityAbnormal, Message: "diabetic-range HbA1c"},
				}},
			},
		},
		{
			Panel: "Lipid Profile",
			Fields: []FieldRule{
				{Field: "Total Cholesterol", Bands: []Band{
					{Op: ">", Bound: 7.5, Severity: SeverityAbnormal, Message: "marked hypercholesterolaemia"},
					{Op: ">", Bound: 5.2, Severity: SeverityAbnormal, Message: "raised cholesterol"},
				}},
				{Field: "LDL", Bands: []Band{
					{Op: ">", Bound: 4.9, Severity: SeverityAbnormal, Message: "high LDL cholesterol"},
				}},
				{Field: "HDL", Bands: []Band{
					{Op: "<", Bound: 0.9, Severity: SeverityAbnormal, Message: "low HDL cholesterol"},
				}},
				{Field: "Triglycerides", Bands: []Band{
					{Op: ">", Bound: 11.2, Severity: SeverityCritical, Message: "severe hypertriglyceridaemia, pancreatitis risk"},
					{Op: ">", Bound: 2.3, Severity: SeverityAbnormal, Message: "hypertriglyceridaemia"},
				}},
			},
		},
		{
			Panel: "Widal Test",
			Fields: []FieldRule{
				{Field: "Salmonella Typhi O", Tokens: []Token{
					{Value: "1:320", Severity: SeverityAbnormal, Message: "significantly raised O titre"},
					{Value: "1:160", Severity: SeverityAbnormal, Message: "borderline O titre"},
				}},
				{Field: "Salmonella Typhi H", Tokens: []Token{
					{Value: "1:320", Severity: SeverityAbnormal, Message: "significantly raised H titre"},
					{Value: "1:160", Severity: SeverityAbnormal, Message: "borderline H titre"},
				}},
			},
			Combos: []ComboRule{
				{
					When: []ComboCondition{
						{Field: "Salmonella Typhi O", Contains: "1:320"},
						{Field: "Salmonella Typhi H", Contains: "1:320"},
					},
					Field:    "Salmonella Typhi O",
					Severity: SeverityCritical,
					Message:  "paired titres strongly suggestive of typhoid fever",
				},
			},
		},
		{
			Panel: "Tuberculosis Tests",
			Fields: []FieldRule{
				{Field: "AFB Smear", Tokens: []Token{
					{Value: "3+", Severity: SeverityCritical, Message: "heavy AFB load"},
					{Value: "2+", Severity: SeverityAbnormal, Message: "moderate AFB load"},
					{Value: "1+", Severity: SeverityAbnormal, Message: "low AFB load"},
					{Value: "scanty", Severity: SeverityAbnormal, Message: "scanty AFB seen"},
					{Value: "positive", Exact: true, Severity: SeverityCritical, Message: "AFB smear positive"},
				}},
				{Field: "GeneXpert", Tokens: []Token{
					{Value: "rif resistance detected", Severity: SeverityCritical, Message: "rifampicin resistance detected"},
					{Value: "mtb detected", Severity: SeverityCritical, Message: "MTB detected"},
				}},
			},
			Combos: []ComboRule{
				{
					When: []ComboCondition{
						{Field: "AFB Smear", Contains: "+"},
						{Field: "GeneXpert", Contains: "mtb detected"},
					},
					Field:    "AFB Smear",
					Severity: SeverityCritical,
					Message:  "bacteriologically confirmed tuberculosis",
				},
			},
		},
		{
			Panel: "HIV Screening",
			Fields: []FieldRule{
				{Field: "HIV 1/2 Antibody", Tokens: []Token{
					{Value: "reactive", Exact: true, Severity: SeverityCritical, Message: "reactive screen, confirmatory testing required"},
				}},
			},
		},
		{
			Panel: "CD4 Count",
			Fields: []FieldRule{
				{Field: "CD4", Bands: []Band{
					{Op: "<", Bound: 50, Severity: SeverityCritical, Message: "profound immunosuppression"},
					{Op: "<", Bound: 200, Severity: SeverityAbnormal, Message: "advanced immunosuppression"},
					{Op: "<", Bound: 350, Severity: SeverityAbnormal, Message: "low CD4 count"},
				}},
			},
		},
		{
			Panel: "Hepatitis B Surface Antigen (HBsAg)",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityCritical, "HBsAg positive")},
			},
		},
		{
			Panel: "Hepatitis C Antibody",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityCritical, "anti-HCV positive")},
			},
		},
		{
			Panel: "Syphilis Test (VDRL)",
			Fields: []FieldRule{
				{Field: "Result", Tokens: []Token{
					{Value: "reactive", Exact: true, Severity: SeverityAbnormal, Message: "reactive VDRL, confirm with TPHA"},
				}},
			},
		},
		{
			Panel: "Pregnancy Test (HCG)",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityAbnormal, "positive pregnancy test")},
			},
		},
		{
			Panel: "Stool Analysis",
			Fields: []FieldRule{
				{Field: "Ova and Cysts", Tokens: []Token{
					{Value: "seen", Exact: true, Severity: SeverityAbnormal, Message: "parasitic ova seen in stool"},
				}},
				{Field: "Occult Blood", Tokens: positive(SeverityAbnormal, "faecal occult blood present")},
			},
		},
		{
			Panel: "Erythrocyte Sedimentation Rate (ESR)",
			Fields: []FieldRule{
				{Field: "ESR", Bands: []Band{
					{Op: ">", Bound: 100, Severity: SeverityAbnormal, Message: "markedly elevated ESR"},
					{Op: ">", Bound: 20, Severity: SeverityAbnormal, Message: "elevated ESR"},
				}},
			},
		},
		{
			Panel: "Thyroid Function Test (TFT)",
			Fields: []FieldRule{
				{Field: "TSH", Bands: []Band{
					{Op: "<", Bound: 0.01, Severity: SeverityAbnormal, Message: "suppressed TSH"},
					{Op: ">", Bound: 10, Severity: SeverityAbnormal, Message: "elevated TSH"},
				}},
				{Field: "Free T4", Bands: []Band{
					{Op: "<", Bound: 9, Severity: SeverityAbnormal, Message: "low free T4"},
					{Op: ">", Bound: 25, Severity: SeverityAbnormal, Message: "elevated free T4"},
				}},
			},
		},
		{
			Panel: "Serum Amylase",
			Fields: []FieldRule{
				{Field: "Amylase", Bands: []Band{
					{Op: ">", Bound: 1000, Severity: SeverityCritical, Message: "possible acute pancreatitis"},
					{Op: ">", Bound: 100, Severity: SeverityAbnormal, Message: "elevated amylase"},
				}},
			},
		},
		{
			Panel: "Sickling Test",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityAbnormal, "sickling positive, confirm with Hb electrophoresis")},
			},
		},
		{
			Panel: "Brucella Test",
			Fields: []FieldRule{
				{Field: "Brucella Abortus", Tokens: []Token{
					{Value: "1:320", Severity: SeverityAbnormal, Message: "raised brucella abortus titre"},
					{Value: "1:160", Severity: SeverityAbnormal, Message: "borderline brucella abortus titre"},
				}},
				{Field: "Brucella Melitensis", Tokens: []Token{
					{Value: "1:320", Severity: SeverityAbnormal, Message: "raised brucella melitensis titre"},
					{Value: "1:160", Severity: SeverityAbnormal, Message: "borderline brucella melitensis titre"},
				}},
			},
		},
		{
			Panel: "H. Pylori Test",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityAbnormal, "H. pylori antigen positive")},
			},
		},
		{
			Panel: "Typhoid Rapid Test",
			Fields: []FieldRule{
				{Field: "Result", Tokens: positive(SeverityAbnormal, "typhoid antibodies detected")},
			},
		},
	}
}

package triage

import (
	"strconv"
	"strings"
)

// Finding is one rule match for one field.
type Finding struct {
	Panel    string   `json:"panel"`
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Evaluate walks a lab payload against the catalog and returns findings in
// catalog declaration order (panel, then field, then combos). The order is
// for display stability only.
//
// The evaluator is permissive throughout: unknown panels and fields are
// skipped, non-numeric values under threshold rules are skipped, and a nil
// payload yields no findings. It never returns an error.
func (c *Catalog) Evaluate(panels map[string]map[string]string) []Finding {
	if len(panels) == 0 {
		return nil
	}

	// Payload keys are free-form; index them once, case-insensitively.
	byKey := make(map[string]map[string]string, len(panels))
	for name, fields := range panels {
		byKey[normalizeKey(name)] = fields
	}

	var findings []Finding
	for _, rule := range c.panels {
		values, ok := byKey[normalizeKey(rule.Panel)]
		if !ok || len(values) == 0 {
			continue
		}
		fieldVals := make(map[string]string, len(values))
		for field, v := range values {
			fieldVals[normalizeKey(field)] = v
		}

		for _, fr := range rule.Fields {
			value, ok := fieldVals[normalizeKey(fr.Field)]
			if !ok {
				continue
			}
			if f, matched := evaluateField(rule.Panel, fr, value); matched {
				findings = append(findings, f)
			}
		}
		for _, combo := range rule.Combos {
			if f, matched := evaluateCombo(rule.Panel, combo, fieldVals); matched {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func evaluateField(panel string, fr FieldRule, value string) (Finding, bool) {
	if len(fr.Bands) > 0 {
		return evaluateBands(panel, fr, value)
	}
	return evaluateTokens(panel, fr, value)
}

// evaluateBands applies a threshold rule top-down; the first comparison that
// holds wins. Values that do not parse as numbers never match.
func evaluateBands(panel string, fr FieldRule, value string) (Finding, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Finding{}, false
	}
	for _, band := range fr.Bands {
		var hit bool
		switch band.Op {
		case "<":
			hit = n < band.Bound
		case ">":
			hit = n > band.Bound
		case "<=":
			hit = n <= band.Bound
		case ">=":
			hit = n >= band.Bound
		}
		if hit {
			return Finding{Panel: panel, Field: fr.Field, Severity: band.Severity, Message: band.Message}, true
		}
	}
	return Finding{}, false
}

// evaluateTokens applies a categorical rule in declaration order, so graded
// markers ("+++" before "++" before "+") resolve to the most specific tier.
func evaluateTokens(panel string, fr FieldRule, value string) (Finding, bool) {
	v := normalizeKey(value)
	if v == "" {
		return Finding{}, false
	}
	for _, tok := range fr.Tokens {
		t := normalizeKey(tok.Value)
		var hit bool
		if tok.Exact {
			hit = v == t
		} else {
			hit = strings.Contains(v, t)
		}
		if hit {
			return Finding{Panel: panel, Field: fr.Field, Severity: tok.Severity, Message: tok.Message}, true
		}
	}
	return Finding{}, false
}

func evaluateCombo(panel string, combo ComboRule, fieldVals map[string]string) (Finding, bool) {
	if len(combo.When) == 0 {
		return Finding{}, false
	}
	for _, cond := range combo.When {
		value, ok := fieldVals[normalizeKey(cond.Field)]
		if !ok || !strings.Contains(normalizeKey(value), normalizeKey(cond.Contains)) {
			return Finding{}, false
		}
	}
	return Finding{Panel: panel, Field: combo.Field, Severity: combo.Severity, Message: combo.Message}, true
}

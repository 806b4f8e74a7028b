package narrative

import "fmt"

// SystemPrompt frames every generation request.
const SystemPrompt = "You are a senior ESG reporting expert."

const narrativeTemplate = `
You are a senior ESG reporting consultant.

Generate a professional ESG narrative using ONLY the data provided.
Do not assume or invent any facts.

DATA:
%s

STRUCTURE:
1. Environment
2. Governance
3. Strategy

STYLE:
- Formal
- Audit-ready
- Plain English
- No marketing language
`

const riskTemplate = `
You are an ESG audit expert advising an organization.

Using ONLY the data below, explain:
1. Why the audit readiness score is at this level
2. Key risk drivers
3. Top 3 remediation actions to improve audit readiness

DATA:
%s

RULES:
- Do not invent facts
- Base explanations strictly on provided data
- Be concise and professional
`

// NarrativePrompt embeds c in the narrative instructions.
func NarrativePrompt(c Context) (string, error) {
	data, err := c.JSON()
	if err != nil {
		return "", fmt.Errorf("encoding narrative context: %w", err)
	}
	return fmt.Sprintf(narrativeTemplate, data), nil
}

// RiskPrompt embeds the risk context in the audit risk instructions.
func RiskPrompt(c Context) (string, error) {
	data, err := jsonIndent(c.Risk())
	if err != nil {
		return "", fmt.Errorf("encoding risk context: %w", err)
	}
	return fmt.Sprintf(riskTemplate, data), nil
}

package distill

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the oracle as an extraction assistant.
const SystemPrompt = "You are an expert assistant specialized in extracting structured information from web content. Extract only what the instructions ask for."

// BuildPrompt renders the per-chunk prompt sent to the oracle.
func BuildPrompt(content, instructions string) string {
	var sb strings.Builder
	sb.WriteString("TASK: Extract specific information from the provided content.\n\n")
	fmt.Fprintf(&sb, "CONTENT:\n%s\n\n", content)
	fmt.Fprintf(&sb, "INSTRUCTIONS:\n%s\n\n", strings.TrimSpace(instructions))
	sb.WriteString("REQUIREMENTS:\n")
	sb.WriteString("1. Extract only the requested information\n")
	sb.WriteString("2. Maintain data accuracy and consistency\n")
	fmt.Fprintf(&sb, "3. If no relevant data is found, return %q\n", NoRelevantData)
	sb.WriteString("4. Format output clearly and structured\n")
	sb.WriteString("5. Preserve original data relationships\n\n")
	sb.WriteString("OUTPUT:\n")
	return sb.String()
}

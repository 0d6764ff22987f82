package question

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// idPattern matches a trailing parenthetical identity token in a prompt,
// e.g. "What is the flow rate? (FPE-0042)".
var idPattern = regexp.MustCompile(`\(([\w-]+)\)\s*$`)

// ExtractID pulls the identity token out of a prompt's trailing
// parenthetical, if one is present.
func ExtractID(text string) (string, bool) {
	m := idPattern.FindStringSubmatch(strings.TrimRight(text, " "))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SynthesizeID builds an identity for a question that carries no token of
// its own: the source row position plus a random suffix, so repeated rows
// stay unique within a load.
func SynthesizeID(row int) string {
	return fmt.Sprintf("row%d-%s", row, uuid.NewString()[:8])
}

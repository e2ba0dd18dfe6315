package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TocConsulting/cryptex/pkg/password"
	"github.com/TocConsulting/cryptex/pkg/sink"
)

// formatSecrets renders generated secrets for stdout or a file. names is
// nil for anonymous secrets and parallel to secrets for key-value output;
// separator only applies to the plain format.
func formatSecrets(secrets, names []string, format, separator string) (string, error) {
	switch format {
	case "plain":
		if names == nil {
			return strings.Join(secrets, separator), nil
		}
		lines := make([]string, len(secrets))
		for i, s := range secrets {
			lines[i] = fmt.Sprintf("%s: %s", names[i], s)
		}
		return strings.Join(lines, "\n"), nil

	case "json":
		return formatJSON(secrets, names)

	case "csv":
		var b strings.Builder
		if names == nil {
			b.WriteString("id,password")
			for i, s := range secrets {
				fmt.Fprintf(&b, "\n%d,%q", i+1, s)
			}
		} else {
			b.WriteString("key,value")
			for i, s := range secrets {
				fmt.Fprintf(&b, "\n%q,%q", names[i], s)
			}
		}
		return b.String(), nil

	case "env":
		lines := make([]string, len(secrets))
		for i, s := range secrets {
			key := fmt.Sprintf("PASSWORD_%d", i+1)
			if names != nil {
				normalized, err := sink.EnvKey(names[i])
				if err != nil {
					return "", err
				}
				key = normalized
			}
			lines[i] = fmt.Sprintf("%s=%q", key, s)
		}
		return strings.Join(lines, "\n"), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
	}
}

// formatJSON emits an array of {id,password} objects for anonymous secrets
// and a name->secret object, in input order, for key-value secrets. The
// object is built by hand because encoding/json sorts map keys.
func formatJSON(secrets, names []string) (string, error) {
	if names == nil {
		type entry struct {
			ID       int    `json:"id"`
			Password string `json:"password"`
		}
		entries := make([]entry, len(secrets))
		for i, s := range secrets {
			entries[i] = entry{ID: i + 1, Password: s}
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	var b strings.Builder
	b.WriteString("{")
	for i, s := range secrets {
		if i > 0 {
			b.WriteString(",")
		}
		k, err := json.Marshal(names[i])
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(s)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n  %s: %s", k, v)
	}
	b.WriteString("\n}")
	return b.String(), nil
}

// formatReport renders a strength report the way the tool has always
// printed it: rating with score, entropy, length, and the character
// classes present.
func formatReport(secret string, r password.Report) string {
	var b strings.Builder
	b.WriteString("\nPassword Analysis:\n")
	fmt.Fprintf(&b, "\nPassword: %s\n", secret)
	fmt.Fprintf(&b, "Strength: %s (Score: %d/%d)\n", r.Rating, r.Score, r.MaxScore)
	fmt.Fprintf(&b, "Entropy: %.1f bits\n", r.EntropyBits)
	fmt.Fprintf(&b, "Length: %d characters\n", r.Length)

	order := []password.Class{password.ClassLower, password.ClassUpper, password.ClassDigit, password.ClassSpecial}
	classes := make([]string, 0, len(order))
	for _, class := range order {
		if r.Classes[class] {
			classes = append(classes, string(class))
		}
	}
	fmt.Fprintf(&b, "Character types: %s", strings.Join(classes, ", "))
	return b.String()
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

// readPayload decodes a YAML or JSON document from file into v.
// A file of "-" reads standard input. Field names are the service's
// JSON names, e.g. DisplayName or ToRecipients.
func readPayload(cmd *cobra.Command, file string, v any) error {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return nil
}

// parseRecipients turns "a@example.com,Bob <b@example.com>" into recipients.
func parseRecipients(list string) []outlook.Recipient {
	var out []outlook.Recipient
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, address := "", part
		if open := strings.LastIndex(part, "<"); open >= 0 && strings.HasSuffix(part, ">") {
			name = strings.TrimSpace(part[:open])
			address = strings.TrimSpace(part[open+1 : len(part)-1])
		}
		out = append(out, outlook.NewRecipient(name, address))
	}
	return out
}

func formatRecipient(r *outlook.Recipient) string {
	if r == nil || r.EmailAddress == nil {
		return ""
	}
	if r.EmailAddress.Name != "" {
		return r.EmailAddress.Name
	}
	return r.EmailAddress.Address
}

// Package extractor normalizes raw QR/barcode payloads into product codes.
//
// Scanner firmware in the field emits several label formats. The rules are
// tried in a fixed priority order; the first match wins.
package extractor

import "strings"

// ProductCode extracts the product code from a scanned payload.
// Returns "" when nothing extractable remains.
//
// Precedence:
//  1. plain code (no '|', ':' or newline) - trimmed as-is
//  2. "PROD:" marker - text up to the next '|', newline, or end
//  3. pipe-delimited label Name|Price|MFD|EXP|Code - 5th field,
//     falling back to the last field on short labels
//  4. multi-line payloads - first line carrying "CODE:" or "PROD:"
//  5. trimmed original
func ProductCode(raw string) string {
	if raw == "" {
		return ""
	}

	// Format 1: just a product code (e.g. "RAPIDENE-001")
	if !strings.ContainsAny(raw, "|:\n") {
		return strings.TrimSpace(raw)
	}

	// Format 2: PROD:CODE, optionally followed by more fields
	if idx := strings.Index(raw, "PROD:"); idx != -1 {
		rest := raw[idx+len("PROD:"):]
		if end := strings.IndexAny(rest, "|\n"); end != -1 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	// Format 3: pipe-delimited label (ProductName|Price|MFD|EXP|ProductCode)
	if strings.Contains(raw, "|") {
		parts := strings.Split(raw, "|")
		if len(parts) >= 5 {
			return strings.TrimSpace(parts[4])
		}
		return strings.TrimSpace(parts[len(parts)-1])
	}

	// Format 4: line-oriented payloads with a CODE: or PROD: line
	if strings.Contains(raw, "\n") {
		for _, line := range strings.Split(raw, "\n") {
			if strings.Contains(line, "CODE:") || strings.Contains(line, "PROD:") {
				if i := strings.Index(line, ":"); i != -1 {
					return strings.TrimSpace(line[i+1:])
				}
			}
		}
	}

	return strings.TrimSpace(raw)
}

package convert

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// CURLImporter imports single curl command lines. It is deliberately a token
// scanner, not a shell parser: quotes and backslash escapes are honored, the
// handful of flags the UI cares about are extracted, everything else is
// skipped. Lenient by design — a command with no URL still imports, with an
// empty URL.
type CURLImporter struct{}

// curlCollectionName names the single-request collection a curl import creates.
const curlCollectionName = "Imported from curl"

// Import parses a curl command into one request wrapped in a new collection.
func (i *CURLImporter) Import(workspaceID string, data []byte) (*Bundle, error) {
	cmd := strings.TrimSpace(string(data))
	if !strings.HasPrefix(cmd, "curl ") && !strings.HasPrefix(cmd, "curl\t") && cmd != "curl" {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "not a curl command",
		}
	}

	parsed := parseCURL(cmd)

	bundle := &Bundle{
		Collection: collection.NewCollection(workspaceID, curlCollectionName, ""),
	}

	name := strings.TrimSpace(parsed.method + " " + parsed.url)
	if parsed.url == "" {
		name = "Imported request"
	}

	req := collection.NewRequest(bundle.Collection.ID, name)
	req.Method = parsed.method
	req.URL = parsed.url
	req.Headers = parsed.headers
	if parsed.body != "" {
		req.BodyType = collection.BodyRaw
		req.Body = parsed.body
	}

	bundle.Requests = append(bundle.Requests, req)
	return bundle, nil
}

// curlParsed holds the fields extracted from a curl command.
type curlParsed struct {
	method  string
	url     string
	headers []collection.Header
	body    string
	user    string // -u basic auth
}

// parseCURL tokenizes the command and walks the flags.
func parseCURL(cmd string) *curlParsed {
	result := &curlParsed{method: "GET"}

	tokens := tokenizeCURL(cmd)
	if len(tokens) > 0 && tokens[0] == "curl" {
		tokens = tokens[1:]
	}

	for idx := 0; idx < len(tokens); idx++ {
		token := tokens[idx]

		switch {
		case token == "-X" || token == "--request":
			if idx+1 < len(tokens) {
				idx++
				result.method = collection.NormalizeMethod(tokens[idx])
			}

		case token == "-H" || token == "--header":
			if idx+1 < len(tokens) {
				idx++
				name, value, ok := strings.Cut(tokens[idx], ":")
				if ok {
					result.headers = append(result.headers, collection.Header{
						Key:   strings.TrimSpace(name),
						Value: strings.TrimSpace(value),
					})
				}
			}

		case token == "-d" || token == "--data" || token == "--data-raw":
			if idx+1 < len(tokens) {
				idx++
				// First data argument wins.
				if result.body == "" {
					result.body = tokens[idx]
				}
			}

		case token == "-u" || token == "--user":
			if idx+1 < len(tokens) {
				idx++
				result.user = tokens[idx]
			}

		case strings.HasPrefix(token, "-"):
			// Skip unknown flags; consume the argument of common ones.
			if curlFlagsWithArgs[token] && idx+1 < len(tokens) {
				idx++
			}

		default:
			if result.url == "" && (strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://")) {
				result.url = token
			}
		}
	}

	if result.user != "" {
		name, pass, _ := strings.Cut(result.user, ":")
		encoded := base64.StdEncoding.EncodeToString([]byte(name + ":" + pass))
		result.headers = append(result.headers, collection.Header{
			Key:   "Authorization",
			Value: "Basic " + encoded,
		})
	}

	return result
}

// curlFlagsWithArgs lists skipped flags that still consume an argument.
var curlFlagsWithArgs = map[string]bool{
	"-o": true, "--output": true,
	"-A": true, "--user-agent": true,
	"-e": true, "--referer": true,
	"-b": true, "--cookie": true,
	"-c": true, "--cookie-jar": true,
	"-T": true, "--upload-file": true,
	"-m": true, "--max-time": true,
	"--connect-timeout": true,
}

// tokenizeCURL splits a curl command respecting single quotes, double quotes
// and backslash escapes.
func tokenizeCURL(cmd string) []string {
	var tokens []string
	var current strings.Builder
	inQuote := rune(0)
	escaped := false

	for _, r := range cmd {
		if escaped {
			// Backslash-newline is a line continuation, not a character.
			if r != '\n' {
				current.WriteRune(r)
			}
			escaped = false
			continue
		}

		if r == '\\' {
			escaped = true
			continue
		}

		if inQuote != 0 {
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
			continue
		}

		switch r {
		case '"', '\'':
			inQuote = r
		case ' ', '\t', '\n', '\r':
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Format returns FormatCURL.
func (i *CURLImporter) Format() Format {
	return FormatCURL
}

// CURLExporter renders each request as a commented curl command block.
type CURLExporter struct{}

// Export emits one "# name\ncurl ..." block per request, newline-joined.
func (e *CURLExporter) Export(col *collection.Collection, requests []*collection.Request) ([]byte, error) {
	if col == nil {
		return nil, &ExportError{Format: FormatCURL, Message: "collection cannot be nil"}
	}

	blocks := make([]string, 0, len(requests))
	for _, req := range requests {
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n", req.Name)
		sb.WriteString("curl")
		if req.Method != "" && req.Method != "GET" {
			fmt.Fprintf(&sb, " -X %s", req.Method)
		}
		for _, h := range req.Headers {
			fmt.Fprintf(&sb, " -H %s", shellQuote(h.Key+": "+h.Value))
		}
		if req.Body != "" {
			fmt.Fprintf(&sb, " --data %s", shellQuote(req.Body))
		}
		if req.URL != "" {
			fmt.Fprintf(&sb, " %s", shellQuote(req.URL))
		}
		blocks = append(blocks, sb.String())
	}

	return []byte(strings.Join(blocks, "\n")), nil
}

// shellQuote single-quotes a value for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Format returns FormatCURL.
func (e *CURLExporter) Format() Format {
	return FormatCURL
}

func init() {
	RegisterImporter(&CURLImporter{})
	RegisterExporter(&CURLExporter{})
}

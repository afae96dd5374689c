// Utilities for extracting the rootlist bearer token from browser cURL commands.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlAuth represents authorization material parsed from a cURL command
// copied out of browser DevTools ("Copy as cURL" on a rootlist request).
type CurlAuth struct {
	Bearer  string // value of the Authorization: Bearer header
	Client  string // value of the client-token header, if present
	Headers map[string]string
}

// ParseCurlFile reads a file containing a cURL command and extracts the bearer token.
func ParseCurlFile(filepath string) (*CurlAuth, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the bearer token and headers.
func ParseCurlCommand(data []byte) (*CurlAuth, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		var headerLine string
		if match[1] != "" {
			headerLine = match[1]
		} else {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			headers[strings.ToLower(key)] = value
		}
	}

	auth := &CurlAuth{Headers: headers}

	if v, ok := headers["authorization"]; ok {
		auth.Bearer = strings.TrimSpace(strings.TrimPrefix(v, "Bearer"))
	}
	if v, ok := headers["client-token"]; ok {
		auth.Client = v
	}

	if auth.Bearer == "" {
		return nil, fmt.Errorf("%w: no Authorization: Bearer header found in curl command", ErrMissingCredentials)
	}

	return auth, nil
}

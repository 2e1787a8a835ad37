// Utilities for parsing cURL commands copied from browser dev tools.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// BrowserHeaders represents headers and cookies parsed from a cURL command,
// as captured from an authenticated music.youtube.com request.
type BrowserHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*BrowserHeaders, error) {
	content, err := VerifyAndReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
// Cookies may arrive either via -b or a "cookie:" header.
func ParseCurlCommand(data []byte) (*BrowserHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	matches := curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1)
	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if strings.EqualFold(key, "cookie") {
			cookie = value
		} else {
			headers[key] = value
		}
	}

	if cookieMatch := curlCookieRegex.FindStringSubmatch(curlCmd); len(cookieMatch) > 1 {
		if cookieMatch[1] != "" {
			cookie = cookieMatch[1]
		} else if cookieMatch[2] != "" {
			cookie = cookieMatch[2]
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &BrowserHeaders{Headers: headers, Cookie: cookie}, nil
}

// ToHeadersRaw converts parsed headers to newline-separated "Key: Value" pairs.
func (b *BrowserHeaders) ToHeadersRaw() string {
	var lines []string

	for key, value := range b.Headers {
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}

	if b.Cookie != "" {
		lines = append(lines, fmt.Sprintf("cookie: %s", b.Cookie))
	}

	return strings.Join(lines, "\n")
}

// WriteAuthFile writes the parsed headers as a browser auth JSON file
// usable as the YouTube Music credential.
func (b *BrowserHeaders) WriteAuthFile(path string) error {
	payload := make(map[string]string, len(b.Headers)+1)
	for key, value := range b.Headers {
		payload[key] = value
	}
	if b.Cookie != "" {
		payload["cookie"] = b.Cookie
	}

	data, err := MarshalJSON(payload, true)
	if err != nil {
		return fmt.Errorf("failed to encode auth file: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	return nil
}

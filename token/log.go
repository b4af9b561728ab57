package token

// redact keeps enough of a token value to correlate log lines.
func redact(value string) string {
	const visible = 4

	if len(value) <= visible {
		return "****"
	}

	return value[:visible] + "****"
}

package providers

import "strings"

// ErrorType buckets provider failures for the LLM call audit log.
type ErrorType string

const (
	ErrorQuota      ErrorType = "quota"
	ErrorRate       ErrorType = "rate"
	ErrorTransient  ErrorType = "transient"
	ErrorPermanent  ErrorType = "permanent"
	ErrorCredential ErrorType = "credential"
)

func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "key missing"), strings.Contains(e, "unauthorized"), strings.Contains(e, "401"):
		return ErrorCredential
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return ErrorQuota
	case strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}

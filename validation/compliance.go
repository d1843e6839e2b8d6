// validation/compliance.go

package validation

import "time"

// Purposes recognised by the data-minimization check.
const (
	PurposeChatResponse = "chat_response"
	PurposeSupport      = "support"
	PurposeCompliance   = "compliance"
)

// purposeFields maps a declared purpose to the fields it justifies touching.
var purposeFields = map[string]map[string]bool{
	PurposeChatResponse: {
		"total_earned": true, "pending_amount": true, "last_payment": true,
		"total_jobs": true, "completed_jobs": true, "upcoming": true,
		"available_balance": true, "needs_interview": true, "active": true,
		"email": true, "bank_verified": true, "identity_verified": true,
		"member_since": true,
	},
	PurposeSupport: {
		"email": true, "phone": true, "total_jobs": true, "upcoming": true,
		"needs_interview": true, "active": true, "member_since": true,
	},
	PurposeCompliance: nil, // compliance reviews may touch any field
}

// CheckDataMinimization reports which requested fields are not justified by
// the declared purpose. An empty result means the request is minimal.
func (e *Engine) CheckDataMinimization(purpose string, requestedFields []string) []string {
	allowed, known := purposeFields[purpose]
	if !known || allowed == nil {
		return nil
	}
	var excess []string
	for _, field := range requestedFields {
		if !allowed[field] {
			excess = append(excess, field)
		}
	}
	return excess
}

// RetentionWindow classifies how long records about a data type may be kept.
func (e *Engine) RetentionWindow(dataType string) time.Duration {
	if IsSensitive(dataType) {
		return 30 * 24 * time.Hour
	}
	return 90 * 24 * time.Hour
}

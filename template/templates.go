// template/templates.go

package template

// builtinTemplates returns the chat-response templates registered on every
// engine. Data is the JSON form of the corresponding payload, so keys match
// the model json tags. Conditionals never nest: the conditional pass runs
// once, before loops, so templates stay flat and the formatter precomputes
// any derived flags they need.
func builtinTemplates() map[string]string {
	return map[string]string{
		"payment_status": `Hi! Here is your payment summary.
Total earned so far: {{total_earned|currency}}.
{{#if pending_amount > 0}}You have {{pending_amount|currency}} pending, it should reach you shortly.{{#else}}You have no pending payments.{{/if}}
{{#if last_payment}}Your last payment of {{last_payment.amount|currency}} was marked {{last_payment.status}} on {{last_payment.created_at|date "short"}}.{{/if}}`,

		"account_status": `Your account overview:
Email: {{email}}
{{#if bank_verified}}Bank account: verified{{#else}}Bank account: not verified. Please complete bank verification to receive payments.{{/if}}
{{#if identity_verified}}Identity: verified{{#else}}Identity: verification pending.{{/if}}
Member since {{member_since|date "short"}}.`,

		"jobs_summary": `You have worked {{total_jobs}} {{pluralize total_jobs "job"}} with us, {{completed_jobs}} completed.
{{#if average_rating > 0}}Your average rating is {{average_rating}}.{{/if}}
{{#if has_upcoming}}Upcoming assignments:
{{#each upcoming}}- {{title}} at {{client}}, {{location}}
{{/each}}{{#else}}No upcoming assignments right now.{{/if}}`,

		"withdrawal_status": `Your available balance is {{available_balance|currency}}.
{{#if pending_amount > 0}}Withdrawals worth {{pending_amount|currency}} are still being processed.{{/if}}
{{#unless bank_verified}}Note: withdrawals stay on hold until your bank account is verified.{{/unless}}`,

		"interview_status": `{{#if has_active}}Your interview is scheduled for {{active.scheduled_at|date "long"}} at {{active.scheduled_at|date "time"}}. Please arrive 10 minutes early.{{/if}}
{{#if needs_slot}}You need to complete an interview before we can place you. Reply here to pick a slot.{{/if}}
{{#if all_clear}}No interview is required on your profile right now.{{/if}}`,

		"profile_summary": `Here is a quick summary of your profile:
{{#if payment}}Earnings: {{payment.total_earned|currency}} total, {{payment.pending_amount|currency}} pending.{{/if}}
{{#if jobs}}Work: {{jobs.total_jobs}} {{pluralize jobs.total_jobs "job"}}, {{jobs.completed_jobs}} completed.{{/if}}
{{#if withdrawal}}Balance available to withdraw: {{withdrawal.available_balance|currency}}.{{/if}}
{{#if has_interview}}Upcoming interview: {{interview_date|date "short"}}.{{/if}}`,

		"general_summary": `Thanks for reaching out! I can help you with payments, your account, job history, withdrawals and interview scheduling. What would you like to know?`,
	}
}

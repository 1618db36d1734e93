// Package quickaction offers follow-up commands after a result table and
// fills their templates from the selected row.
package quickaction

import (
	"cmdpalette/grammar"
	"cmdpalette/model"
)

var actions = map[string][]model.QuickAction{
	"company.list": {
		{Key: "s", Label: "Switch", Template: "company switch {slug}", NeedsRow: true, Prompt: "Which company?"},
		{Key: "n", Label: "New company", Template: "company create "},
	},
	"company.current": {
		{Key: "u", Label: "Users", Template: "user list"},
		{Key: "l", Label: "All companies", Template: "company list"},
	},
	"user.list": {
		{Key: "r", Label: "Remove", Template: "user remove {email}", NeedsRow: true, Prompt: "Which user?"},
		{Key: "g", Label: "Assign role", Template: "role assign {email} ", NeedsRow: true, Prompt: "Which user?"},
		{Key: "i", Label: "Invite", Template: "user invite "},
	},
	"role.list": {
		{Key: "g", Label: "Assign", Template: "role assign --role={name} ", NeedsRow: true, Prompt: "Which role?"},
	},
	"customer.list": {
		{Key: "v", Label: "View", Template: "customer show {name}", NeedsRow: true, Prompt: "Which customer?"},
		{Key: "i", Label: "Invoice", Template: "invoice create {name} ", NeedsRow: true, Prompt: "Invoice which customer?"},
	},
	"invoice.list": {
		{Key: "v", Label: "View", Template: "invoice show {id}", NeedsRow: true, Prompt: "Which invoice?"},
		{Key: "s", Label: "Send", Template: "invoice send {id}", NeedsRow: true, Prompt: "Send which invoice?"},
		{Key: "p", Label: "Record payment", Template: "payment create {id} {amount}", NeedsRow: true, Prompt: "Pay which invoice?"},
		{Key: "x", Label: "Void", Template: "invoice void {id}", NeedsRow: true, Prompt: "Void which invoice?"},
	},
	"invoice.create": {
		{Key: "s", Label: "Send", Template: "invoice send {id}", NeedsRow: true},
		{Key: "l", Label: "All invoices", Template: "invoice list"},
	},
	"payment.list": {
		{Key: "v", Label: "View invoice", Template: "invoice show {invoice}", NeedsRow: true, Prompt: "Which invoice?"},
	},
	"account.list": {
		{Key: "d", Label: "Debit", Template: "journal create --debit={code} ", NeedsRow: true, Prompt: "Which account?"},
		{Key: "c", Label: "Credit", Template: "journal create --credit={code} ", NeedsRow: true, Prompt: "Which account?"},
	},
	"history": {
		{Key: "r", Label: "Run again", Template: "{command}", NeedsRow: true, Prompt: "Which command?"},
	},
	"journal.list": {
		{Key: "v", Label: "View", Template: "journal show {id}", NeedsRow: true, Prompt: "Which entry?"},
	},
}

// ActionsFor returns the quick actions offered after entity verb, in
// display order. Unknown pairs have none.
func ActionsFor(entity, verb string) []model.QuickAction {
	list := actions[grammar.CommandKey(entity, verb)]
	if len(list) == 0 {
		return nil
	}
	return append([]model.QuickAction(nil), list...)
}

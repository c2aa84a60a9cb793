// Package chat is the storefront's keyword chatbot. Rules are checked in
// order and the first keyword hit wins.
package chat

import "strings"

type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{[]string{"hello", "hi", "hey"}, "Hello! Welcome to the grocery store. How can I help you today?"},
	{[]string{"coin", "reward", "loyalty"}, "You earn coins worth 10% of every order total. Coins never expire."},
	{[]string{"deliver", "shipping"}, "Deliveries usually arrive within 2 hours of placing an order."},
	{[]string{"refund", "cancel"}, "For refunds or cancellations, share your order id and our team will reach out."},
	{[]string{"stock", "available"}, "If a product shows Out of Stock, check back soon. We restock daily."},
	{[]string{"order", "track"}, "You can see every order you have placed under My Orders."},
}

const fallback = "Sorry, I did not get that. Try asking about orders, delivery, coins or refunds."

// Short greetings match whole words only so "hi" does not fire inside
// "this" or "shipping".
var wordOnly = map[string]bool{"hi": true, "hey": true}

func Reply(message string) string {
	msg := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matches(msg, kw) {
				return r.reply
			}
		}
	}
	return fallback
}

func matches(msg, kw string) bool {
	if !wordOnly[kw] {
		return strings.Contains(msg, kw)
	}
	for _, w := range strings.Fields(msg) {
		if strings.Trim(w, ".,!?") == kw {
			return true
		}
	}
	return false
}

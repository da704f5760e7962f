package services

import "errors"

// Terminal recommendation outcomes. Services return these; handlers map
// them onto fixed chat messages so failure detail never leaks to users.
var (
	ErrNoResults          = errors.New("no matching games found")
	ErrRestricted         = errors.New("restricted content for underage user")
	ErrInsufficientSignal = errors.New("not enough user signal")
	ErrNeedsClarification = errors.New("query maps to no known tags")
)

// Fixed user-facing chat messages.
const (
	MsgSuccess            = "Here are some games you might like! 😸"
	MsgGameInfo           = "Here is what I found about that game. 🕵️"
	MsgNotSupported       = "Sorry, I can only help with game recommendations. Try asking me for a game! 😸"
	MsgRestricted         = "That search leads to adults-only games, so I can't show it to you. 🕵️"
	MsgNoResults          = "I couldn't find any games matching that. Try different words? 😿"
	MsgInsufficientSignal = "I don't know your tastes well enough yet. Pick some interests or link your Steam profile first!"
	MsgNeedsClarification = "I couldn't tell what kind of game you want. Could you describe it differently?"
)

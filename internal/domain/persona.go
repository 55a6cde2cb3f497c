package domain

// Persona is a conversational identity with a fixed system instruction
// steering the hosted model's responses. SystemPrompt stays server-side
// and is never serialized to clients.
type Persona struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	SystemPrompt string `json:"-"`
}

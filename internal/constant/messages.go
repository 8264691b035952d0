package constant

// Fixed user-facing replies. Each short-circuit path answers with one of
// these instead of calling retrieval or the model.
const (
	ReplyEmptyQuery = "Empty query."

	// HTTP surface answers in Romanian, matching the localized wordlists.
	ReplyProfanity = "🤖 Să păstrăm un ton respectuos, te rog reformulează 🙏"
	ReplyNoMatches = "Nu am găsit potriviri. Adaugă câteva detalii."

	// CLI surface answers in English.
	ReplyCLIProfanity = "Let's keep it respectful 🙏 Please rephrase your request."
	ReplyCLINoMatches = "I couldn't find matches. Can you add a bit more detail?"

	// Remote failures downstream of the gate become an apology, never a
	// crashed request.
	ReplyServiceFailure = "Sorry, something went wrong while looking for a recommendation. Please try again."
)

package tui

// UI Text Constants
const (
	TextTitle = "🎬 Text to Video"

	TextPlaceholder   = "Type or paste the text to narrate..."
	TextConfirmReset  = "Reset the form and cancel current operation? (y/n)"
	TextFooterEdit    = "ctrl+s submit | esc reset | ctrl+o file | ctrl+l article URL | ctrl+r feed | ctrl+c quit"
	TextFooterResults = "ctrl+d download | ctrl+s submit again | esc reset | ctrl+c quit"
	TextFooterPrompt  = "enter load | esc cancel"
	TextDismissAlert  = "(press any key to dismiss)"

	TextPromptFile = "File path: "
	TextPromptURL  = "Article URL: "
	TextPromptFeed = "Feed URL or preset: "

	TextDownloading = "Downloading video..."
)

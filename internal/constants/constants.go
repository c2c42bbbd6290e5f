package constants

// AppName names the data directory and the CLI.
const AppName = "chatterm"

// SyntaxTheme is the default Chroma theme for message highlighting and the
// UI palette. Override with ui.syntax_theme or CHATTERM_THEME.
//
// Dark themes that work well in terminals:
//   - github-dark, monokai, dracula, nord, gruvbox, onedark
//   - catppuccin-mocha, tokyonight-night, rose-pine, vulcan
//
// Light themes:
//   - github, solarized-light, catppuccin-latte, tokyonight-day
const SyntaxTheme = "github-dark"

// HistoryLimit is how many messages are loaded and kept in memory.
const HistoryLimit = 200

// MessageLanguage is the Chroma lexer used for message bodies.
const MessageLanguage = "markdown"

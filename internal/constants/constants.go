package constants

// AppName names the config directory, cache directory and window.
const AppName = "hipster"

// WindowTitle is shown in the title bar.
const WindowTitle = "Hipster"

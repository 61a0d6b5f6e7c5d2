package wabot

// Version is set at build time with -ldflags "-X github.com/a-h/wabot.Version=...".
var Version = "dev"

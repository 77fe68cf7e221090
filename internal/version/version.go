package version

// Version is overridden at build time with
// -ldflags "-X mirscan/internal/version.Version=...".
var Version = "dev"

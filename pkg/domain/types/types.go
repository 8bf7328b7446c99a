package types

// Version is set via -ldflags at build time.
var Version = "v0.1.0"

// StatusContext is the commit status context prguard reports under.
const StatusContext = "prguard/changelog-label"

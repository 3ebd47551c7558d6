package model

// Package model contains the value types shared by the codec, the service and the CLI.
// No codec logic lives here; derived values are filled in by the service.

package mcp

// BuildTransport exposes buildTransport for testing.
var BuildTransport = buildTransport

// ConvertError exposes convertError for testing.
var ConvertError = convertError

// CollectTools exposes collectTools for testing.
var CollectTools = collectTools

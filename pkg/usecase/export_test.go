package usecase

// ParseExtraction is exported for testing
var ParseExtraction = parseExtraction

// ContainsAny is exported for testing
var ContainsAny = containsAny

// MaxSummaryInput is exported for testing
const MaxSummaryInput = maxSummaryInput

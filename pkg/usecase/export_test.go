package usecase

// PhotoObjectName is exported for testing
var PhotoObjectName = photoObjectName

package errutil

var SentryContextForTest = sentryContext

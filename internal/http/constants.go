package httpx

// SessionCookieName is the default cookie carrying the session key.
const SessionCookieName = "session_id"

package common

// SessionCookieName is the HTTP cookie that carries the signed session
// identifier between login and subsequent requests.
const SessionCookieName = "sid"

// StrategyLocal names the username/password verification strategy.
const StrategyLocal = "local"

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "app.name", "Portfolio Tracker")
	message.SetString(lang, "app.tagline", "Track how your investments evolve")
	message.SetString(lang, "app.loading", "Loading...")

	// Navigation
	message.SetString(lang, "nav.dashboard", "Dashboard")
	message.SetString(lang, "nav.history", "History")
	message.SetString(lang, "nav.logout", "Sign out")
	message.SetString(lang, "nav.lang_fr", "FR")
	message.SetString(lang, "nav.lang_en", "EN")

	// Login and signup
	message.SetString(lang, "title.login", "Sign in | %s")
	message.SetString(lang, "login.heading", "Sign in")
	message.SetString(lang, "login.subtitle", "Sign in to access your portfolio")
	message.SetString(lang, "login.oauth_button", "Sign in with Google")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")
	message.SetString(lang, "login.no_account", "No account yet?")
	message.SetString(lang, "login.signup_link", "Create an account")
	message.SetString(lang, "login.terms", "By signing in you accept our terms of use")
	message.SetString(lang, "login.error.credentials", "Incorrect email or password")
	message.SetString(lang, "title.signup", "Create an account | %s")
	message.SetString(lang, "signup.heading", "Create an account")
	message.SetString(lang, "signup.subtitle", "Join Portfolio Tracker")
	message.SetString(lang, "signup.name", "Full name")
	message.SetString(lang, "signup.confirm_password", "Confirm password")
	message.SetString(lang, "signup.submit", "Create my account")
	message.SetString(lang, "signup.have_account", "Already have an account?")
	message.SetString(lang, "signup.login_link", "Sign in")
	message.SetString(lang, "signup.terms", "By creating an account you accept our terms of use")
	message.SetString(lang, "signup.error.mismatch", "Passwords do not match")
	message.SetString(lang, "signup.error.too_short", "Password must be at least 6 characters")
	message.SetString(lang, "signup.error.generic", "Something went wrong while creating your account")

	// OAuth callback
	message.SetString(lang, "title.callback", "Authenticating | %s")
	message.SetString(lang, "callback.authenticating", "Authenticating...")
	message.SetString(lang, "callback.noscript", "JavaScript is required to finish signing in.")

	// Toasts
	message.SetString(lang, "toast.login_success", "Signed in successfully!")
	message.SetString(lang, "toast.login_failed", "Authentication failed")
	message.SetString(lang, "toast.logout_success", "Signed out")
	message.SetString(lang, "toast.logout_failed", "Could not sign out")
	message.SetString(lang, "toast.load_failed", "Could not load your data")
	message.SetString(lang, "toast.crypto_added", "Cryptocurrency added")
	message.SetString(lang, "toast.crypto_add_failed", "Could not add the cryptocurrency")
	message.SetString(lang, "toast.stock_added", "Stock added")
	message.SetString(lang, "toast.stock_add_failed", "Could not add the stock")
	message.SetString(lang, "toast.coin_added", "Coin added")
	message.SetString(lang, "toast.coin_add_failed", "Could not add the coin")
	message.SetString(lang, "toast.holding_deleted", "Item deleted")
	message.SetString(lang, "toast.holding_delete_failed", "Could not delete the item")
	message.SetString(lang, "toast.snapshot_created", "Snapshot created")
	message.SetString(lang, "toast.snapshot_failed", "Could not create the snapshot")
	message.SetString(lang, "toast.history_failed", "Could not load the history")
	message.SetString(lang, "toast.invalid_holding", "Check the form fields")

	// Dashboard
	message.SetString(lang, "title.dashboard", "Dashboard | %s")
	message.SetString(lang, "dashboard.greeting", "Hello, %s")
	message.SetString(lang, "dashboard.total", "Total value")
	message.SetString(lang, "dashboard.crypto", "Cryptocurrencies")
	message.SetString(lang, "dashboard.stocks", "Stocks")
	message.SetString(lang, "dashboard.coins", "Coins")
	message.SetString(lang, "dashboard.count", "%d item(s)")
	message.SetString(lang, "dashboard.snapshot", "Take a snapshot")
	message.SetString(lang, "dashboard.empty", "Nothing here yet")
	message.SetString(lang, "holding.name", "Name")
	message.SetString(lang, "holding.symbol", "Symbol")
	message.SetString(lang, "holding.symbol_crypto_hint", "Symbol (e.g. BTC)")
	message.SetString(lang, "holding.symbol_stock_hint", "Symbol (e.g. AAPL)")
	message.SetString(lang, "holding.quantity", "Quantity")
	message.SetString(lang, "holding.purchase_price", "Purchase price (EUR)")
	message.SetString(lang, "holding.url", "Site URL")
	message.SetString(lang, "holding.css_selector", "CSS selector")
	message.SetString(lang, "holding.current_price", "Current price")
	message.SetString(lang, "holding.value", "Value")
	message.SetString(lang, "holding.add", "Add")
	message.SetString(lang, "holding.delete", "Delete")
	message.SetString(lang, "holding.price_unavailable", "Unavailable")

	// History
	message.SetString(lang, "title.history", "History | %s")
	message.SetString(lang, "history.heading", "Portfolio history")
	message.SetString(lang, "history.details", "Snapshot details")
	message.SetString(lang, "history.empty", "No snapshots yet")
	message.SetString(lang, "history.empty_hint", "Take a snapshot from the dashboard to follow your portfolio over time")
	message.SetString(lang, "history.date", "Date")
	message.SetString(lang, "history.total", "Total")

	// Errors
	message.SetString(lang, "title.error", "Error | %s")
	message.SetString(lang, "error.heading", "Something went wrong")
	message.SetString(lang, "error.not_found", "Page not found")
	message.SetString(lang, "error.unavailable", "The service is temporarily unavailable. Try again in a moment.")
	message.SetString(lang, "error.back_home", "Back to the dashboard")
}

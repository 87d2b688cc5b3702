package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.French

	message.SetString(lang, "app.name", "Portfolio Tracker")
	message.SetString(lang, "app.tagline", "Suivez l'évolution de vos investissements")
	message.SetString(lang, "app.loading", "Chargement...")

	// Navigation
	message.SetString(lang, "nav.dashboard", "Tableau de bord")
	message.SetString(lang, "nav.history", "Historique")
	message.SetString(lang, "nav.logout", "Déconnexion")
	message.SetString(lang, "nav.lang_fr", "FR")
	message.SetString(lang, "nav.lang_en", "EN")

	// Login and signup
	message.SetString(lang, "title.login", "Connexion | %s")
	message.SetString(lang, "login.heading", "Connexion")
	message.SetString(lang, "login.subtitle", "Connectez-vous pour accéder à votre portfolio")
	message.SetString(lang, "login.oauth_button", "Se connecter avec Google")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.password", "Mot de passe")
	message.SetString(lang, "login.submit", "Se connecter")
	message.SetString(lang, "login.no_account", "Pas encore de compte ?")
	message.SetString(lang, "login.signup_link", "Créer un compte")
	message.SetString(lang, "login.terms", "En vous connectant, vous acceptez nos conditions d'utilisation")
	message.SetString(lang, "login.error.credentials", "Email ou mot de passe incorrect")
	message.SetString(lang, "title.signup", "Créer un compte | %s")
	message.SetString(lang, "signup.heading", "Créer un compte")
	message.SetString(lang, "signup.subtitle", "Rejoignez Portfolio Tracker")
	message.SetString(lang, "signup.name", "Nom complet")
	message.SetString(lang, "signup.confirm_password", "Confirmer le mot de passe")
	message.SetString(lang, "signup.submit", "Créer mon compte")
	message.SetString(lang, "signup.have_account", "Déjà un compte ?")
	message.SetString(lang, "signup.login_link", "Se connecter")
	message.SetString(lang, "signup.terms", "En créant un compte, vous acceptez nos conditions d'utilisation")
	message.SetString(lang, "signup.error.mismatch", "Les mots de passe ne correspondent pas")
	message.SetString(lang, "signup.error.too_short", "Le mot de passe doit contenir au moins 6 caractères")
	message.SetString(lang, "signup.error.generic", "Une erreur est survenue lors de la création du compte")

	// OAuth callback
	message.SetString(lang, "title.callback", "Authentification | %s")
	message.SetString(lang, "callback.authenticating", "Authentification en cours...")
	message.SetString(lang, "callback.noscript", "JavaScript est nécessaire pour terminer la connexion.")

	// Toasts
	message.SetString(lang, "toast.login_success", "Connexion réussie !")
	message.SetString(lang, "toast.login_failed", "Échec de l'authentification")
	message.SetString(lang, "toast.logout_success", "Déconnexion réussie")
	message.SetString(lang, "toast.logout_failed", "Erreur lors de la déconnexion")
	message.SetString(lang, "toast.load_failed", "Erreur lors du chargement des données")
	message.SetString(lang, "toast.crypto_added", "Cryptomonnaie ajoutée avec succès")
	message.SetString(lang, "toast.crypto_add_failed", "Erreur lors de l'ajout de la cryptomonnaie")
	message.SetString(lang, "toast.stock_added", "Action ajoutée avec succès")
	message.SetString(lang, "toast.stock_add_failed", "Erreur lors de l'ajout de l'action")
	message.SetString(lang, "toast.coin_added", "Pièce ajoutée avec succès")
	message.SetString(lang, "toast.coin_add_failed", "Erreur lors de l'ajout de la pièce")
	message.SetString(lang, "toast.holding_deleted", "Élément supprimé avec succès")
	message.SetString(lang, "toast.holding_delete_failed", "Erreur lors de la suppression")
	message.SetString(lang, "toast.snapshot_created", "Instantané créé avec succès")
	message.SetString(lang, "toast.snapshot_failed", "Erreur lors de la création de l'instantané")
	message.SetString(lang, "toast.history_failed", "Erreur lors du chargement de l'historique")
	message.SetString(lang, "toast.invalid_holding", "Vérifiez les champs du formulaire")

	// Dashboard
	message.SetString(lang, "title.dashboard", "Tableau de bord | %s")
	message.SetString(lang, "dashboard.greeting", "Bonjour, %s")
	message.SetString(lang, "dashboard.total", "Valeur Totale")
	message.SetString(lang, "dashboard.crypto", "Cryptomonnaies")
	message.SetString(lang, "dashboard.stocks", "Actions")
	message.SetString(lang, "dashboard.coins", "Pièces de Monnaie")
	message.SetString(lang, "dashboard.count", "%d élément(s)")
	message.SetString(lang, "dashboard.snapshot", "Créer un instantané")
	message.SetString(lang, "dashboard.empty", "Aucun élément")
	message.SetString(lang, "holding.name", "Nom")
	message.SetString(lang, "holding.symbol", "Symbole")
	message.SetString(lang, "holding.symbol_crypto_hint", "Symbole (ex: BTC)")
	message.SetString(lang, "holding.symbol_stock_hint", "Symbole (ex: AAPL)")
	message.SetString(lang, "holding.quantity", "Quantité")
	message.SetString(lang, "holding.purchase_price", "Prix d'achat (EUR)")
	message.SetString(lang, "holding.url", "URL du site")
	message.SetString(lang, "holding.css_selector", "Sélecteur CSS")
	message.SetString(lang, "holding.current_price", "Prix actuel")
	message.SetString(lang, "holding.value", "Valeur")
	message.SetString(lang, "holding.add", "Ajouter")
	message.SetString(lang, "holding.delete", "Supprimer")
	message.SetString(lang, "holding.price_unavailable", "Indisponible")

	// History
	message.SetString(lang, "title.history", "Historique | %s")
	message.SetString(lang, "history.heading", "Historique du portfolio")
	message.SetString(lang, "history.details", "Détails des instantanés")
	message.SetString(lang, "history.empty", "Aucun instantané disponible")
	message.SetString(lang, "history.empty_hint", "Créez un instantané depuis le dashboard pour suivre l'évolution de votre portfolio")
	message.SetString(lang, "history.date", "Date")
	message.SetString(lang, "history.total", "Total")

	// Errors
	message.SetString(lang, "title.error", "Erreur | %s")
	message.SetString(lang, "error.heading", "Une erreur est survenue")
	message.SetString(lang, "error.not_found", "Page introuvable")
	message.SetString(lang, "error.unavailable", "Le service est momentanément indisponible. Réessayez dans un instant.")
	message.SetString(lang, "error.back_home", "Retour au tableau de bord")
}

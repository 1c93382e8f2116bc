// Package profile mounts the profile HTTP surface on a chi router: rule
// descriptors for clients, the OpenAPI schema, record validation, profile
// creation and a server-rendered form with live per-field feedback.
//
//	ev := validator.MustDefault()
//	r := chi.NewRouter()
//	r.Mount("/profile", profile.Router(profile.NewHandler(ev, profile.NewMemoryStore(), log)))
//
// Every route judges input with the same validator.Evaluator, so the form's
// pattern attributes and the server-side verdicts cannot drift apart.
package profile

package services

// NoRedirect is the literal the deletion form submits when it had no
// "next" destination to offer.
const NoRedirect = "None"

// ResolveDeleteRedirect picks where to send the user after a deletion.
// The forbidden destination is the deleted content's own page, which no
// longer exists; next is taken verbatim otherwise (same-origin is not
// enforced here).
func ResolveDeleteRedirect(fallback, next, forbidden string) string {
	if next == "" || next == NoRedirect || next == forbidden {
		return fallback
	}
	return next
}

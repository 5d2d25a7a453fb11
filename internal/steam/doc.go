// Package steam implements the HTTP client for the Steam Community
// endpoints the tracker depends on:
//
//   - GET /inventory/{steamid}/{appid}/{contextid} — the account inventory,
//     authenticated with the sessionid and steamLoginSecure cookies
//   - GET /market/priceoverview/ — the market price lookup
//
// Both calls are plain GETs with bounded timeouts. Failures surface as
// errors to the caller; the tracker absorbs them and retries on the next
// cycle.
package steam

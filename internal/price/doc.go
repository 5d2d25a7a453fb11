// Package price implements the two price components of the tracker: the
// pure parser that turns localized price text into a number, and the
// resolver that queries the market price service with caching and a
// failure sentinel.
package price

// Package catalog holds the static tables the game reads but never writes:
// difficulty tiers, purchasable goals, the monthly event deck, and the fixed
// household expense base.
//
// Every table is keyed by a closed tag type. Lookups report whether the key
// matched, and the *OrDefault helpers make the fallback explicit instead of
// hiding it behind a slice scan.
//
// Accessors return copies so callers (including presentation code iterating
// for selection screens) cannot mutate the shared tables.
package catalog

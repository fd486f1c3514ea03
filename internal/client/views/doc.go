// Package views holds the pages of the gophcards client.
//
// A page is mounted when the router resolves to it and unmounted when the
// user navigates away. Each mount gets a child context that is cancelled on
// unmount, so requests still in flight are aborted and their results are
// dropped instead of landing in a page that is no longer shown.
//
// The CRUD pages (datasets, vocabulary, progress) are instances of the
// generic ResourceView parameterised by a Schema. Lists are kept in
// store.List, which reconciles fetched lists with local edits by id.
package views

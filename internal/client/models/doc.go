// Package models defines the entities exchanged with the flashcard backend
// and their JSON wire forms.
//
// The backend is inconsistent about id field names: a dataset id may arrive
// as "_id", "dataset_id" or "id". Decoding accepts every known alias and
// encoding always uses the canonical name.
package models

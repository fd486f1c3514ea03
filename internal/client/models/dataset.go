package models

import "encoding/json"

type Dataset struct {
	ID          string    `json:"dataset_id,omitempty"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (d Dataset) Key() string { return d.ID }

func (d *Dataset) UnmarshalJSON(b []byte) error {
	type plain Dataset
	aux := struct {
		plain
		UnderscoreID json.RawMessage `json:"_id"`
		DatasetID    json.RawMessage `json:"dataset_id"`
		ID           json.RawMessage `json:"id"`
	}{plain: plain(*d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := pickID(aux.UnderscoreID, aux.DatasetID, aux.ID)
	if err != nil {
		return err
	}

	*d = Dataset(aux.plain)
	if id != "" {
		d.ID = id
	}
	return nil
}

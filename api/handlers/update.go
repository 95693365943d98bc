package handlers

import "go.mongodb.org/mongo-driver/bson"

// updateFields flattens a pointer-field update struct into the document that
// will be applied with $set. Nil fields are dropped by their omitempty tags,
// so an empty result means the request carried nothing to change. Mongo
// rejects an empty $set, so callers must not pass an empty document through.
func updateFields(update interface{}) (bson.M, error) {
	raw, err := bson.Marshal(update)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

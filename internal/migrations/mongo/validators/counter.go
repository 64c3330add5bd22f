package validators

import "go.mongodb.org/mongo-driver/bson"

var CounterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "seq"},

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"seq": bson.M{
				"bsonType": []string{"long", "int"},
				"minimum":  0,
			},
		},
	},
}

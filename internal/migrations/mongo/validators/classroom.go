package validators

import "go.mongodb.org/mongo-driver/bson"

var ClassroomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"building",
			"capacity",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"building": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"floor": bson.M{
				"bsonType": "int",
				"minimum":  -5,
				"maximum":  200,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  2000,
			},

			"has_computers": bson.M{
				"bsonType": "bool",
			},

			"status": bson.M{
				"enum": []string{"available", "maintenance", "reserved"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

package schema

import "github.com/hatlonely/surrealauth/rdb"

func field(key, typ string, required bool) *FieldDefinition {
	return &FieldDefinition{Key: key, Type: Scalar(typ), Required: required}
}

func uniqueField(key, typ string) *FieldDefinition {
	return &FieldDefinition{Key: key, Type: Scalar(typ), Required: true, Unique: true}
}

func referenceField(key, model string) *FieldDefinition {
	return &FieldDefinition{Key: key, Type: Scalar("string"), Required: true, References: &rdb.Reference{Model: model}}
}

// AuthTables 认证框架的核心表：user、session、account、verification
func AuthTables() []*TableModel {
	return []*TableModel{
		{
			Key:       "user",
			ModelName: "user",
			Fields: []*FieldDefinition{
				field("name", "string", true),
				uniqueField("email", "string"),
				field("emailVerified", "boolean", true),
				field("image", "string", false),
				field("createdAt", "date", true),
				field("updatedAt", "date", true),
			},
		},
		{
			Key:       "session",
			ModelName: "session",
			Fields: []*FieldDefinition{
				field("expiresAt", "date", true),
				uniqueField("token", "string"),
				field("createdAt", "date", true),
				field("updatedAt", "date", true),
				field("ipAddress", "string", false),
				field("userAgent", "string", false),
				referenceField("userId", "user"),
			},
		},
		{
			Key:       "account",
			ModelName: "account",
			Fields: []*FieldDefinition{
				field("accountId", "string", true),
				field("providerId", "string", true),
				referenceField("userId", "user"),
				field("accessToken", "string", false),
				field("refreshToken", "string", false),
				field("idToken", "string", false),
				field("accessTokenExpiresAt", "date", false),
				field("refreshTokenExpiresAt", "date", false),
				field("scope", "string", false),
				field("password", "string", false),
				field("createdAt", "date", true),
				field("updatedAt", "date", true),
			},
		},
		{
			Key:       "verification",
			ModelName: "verification",
			Fields: []*FieldDefinition{
				field("identifier", "string", true),
				field("value", "string", true),
				field("expiresAt", "date", true),
				field("createdAt", "date", false),
				field("updatedAt", "date", false),
			},
		},
	}
}

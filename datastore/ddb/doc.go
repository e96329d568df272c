/*
Package ddb implements datastore.DataStore[T] on AWS DynamoDB.

Items are stored in a single table keyed by (PK = registered type name,
SK = entity key). The stored attributes are the conversion engine's
plain-data encoding of the entity, marshaled with the attributevalue
feature package; reads unmarshal back to plain data and decode through the
engine, so stored items honor the same shapes, defaults, and required
fields as any other conversion input.

Construction requires the aggregate type to be registered first:

	registry.RegisterAggregate[RatingSystem]("RatingSystem")
	client, _ := ddb.NewDynamoDBClient(accessKey, secretKey, region)
	store, _ := ddb.New[RatingSystem](client, tableName, nil)
	err := store.Put(ctx, "TTOakville", rs)

Integration tests run against a real table and are build-tagged; they load
credentials from the environment via godotenv.
*/
package ddb

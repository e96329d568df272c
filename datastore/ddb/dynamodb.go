/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/typeconv"
	"github.com/suparena/typeconv/datastore"
	"github.com/suparena/typeconv/registry"
	"github.com/suparena/typeconv/typedesc"
)

// Store implements datastore.DataStore[T] on DynamoDB. Entities are encoded
// through the conversion engine into plain data, marshaled to attribute
// values, and stored under a partition key per registered type name with
// the entity key as sort key.
type Store[T any] struct {
	client    *sdk.Client
	tableName string
	engine    *typeconv.Engine
	typeName  string
	target    typedesc.Descriptor
}

// Attribute names reserved for the key schema; they are stripped before an
// item is handed back to the engine.
const (
	attrPK         = "PK"
	attrSK         = "SK"
	attrEntityType = "EntityType"
)

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a Store for the registered aggregate type T.
func New[T any](client *sdk.Client, tableName string, engine *typeconv.Engine) (*Store[T], error) {
	target, err := registry.DescriptorOf[T]()
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine = typeconv.DefaultEngine
	}
	return &Store[T]{
		client:    client,
		tableName: tableName,
		engine:    engine,
		typeName:  target.Name(),
		target:    target,
	}, nil
}

func (s *Store[T]) key(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: s.typeName},
		attrSK: &types.AttributeValueMemberS{Value: key},
	}
}

// Put encodes the entity through the engine and stores it.
func (s *Store[T]) Put(ctx context.Context, key string, entity T) error {
	encoded, err := s.engine.ToJSON(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.typeName, err)
	}
	m, ok := encoded.(map[string]typeconv.Value)
	if !ok {
		return fmt.Errorf("encoded %s is %T, want an object", s.typeName, encoded)
	}

	av, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.typeName, err)
	}
	av[attrPK] = &types.AttributeValueMemberS{Value: s.typeName}
	av[attrSK] = &types.AttributeValueMemberS{Value: key}
	av[attrEntityType] = &types.AttributeValueMemberS{Value: s.typeName}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem error: %w", err)
	}
	return nil
}

// GetOne retrieves a single entity by key, decoding the stored item through
// the engine. It returns nil without error when no item exists.
func (s *Store[T]) GetOne(ctx context.Context, key string) (*T, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       s.key(key),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return s.decodeItem(out.Item)
}

// Query lists entities of the store's type.
func (s *Store[T]) Query(ctx context.Context, params *datastore.QueryParams) ([]*T, error) {
	keyCond := "PK = :pk"
	input := &sdk.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: &keyCond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: s.typeName},
		},
	}
	if params != nil {
		input.Limit = params.Limit
		input.ScanIndexForward = params.Ascending
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("Query error: %w", err)
	}

	results := make([]*T, 0, len(out.Items))
	for _, item := range out.Items {
		entity, err := s.decodeItem(item)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// Delete removes the entity with the given key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key:       s.key(key),
	})
	if err != nil {
		return fmt.Errorf("DeleteItem error: %w", err)
	}
	return nil
}

func (s *Store[T]) decodeItem(item map[string]types.AttributeValue) (*T, error) {
	var raw map[string]any
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	delete(raw, attrPK)
	delete(raw, attrSK)
	delete(raw, attrEntityType)

	decoded, err := s.engine.FromJSON(s.target, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.typeName, err)
	}
	entity, ok := decoded.(*T)
	if !ok {
		return nil, fmt.Errorf("decoded %T, want *%s", decoded, s.typeName)
	}
	return entity, nil
}

var _ datastore.DataStore[struct{}] = (*Store[struct{}])(nil)

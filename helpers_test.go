/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv_test

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/registry"
	"github.com/suparena/typeconv/typedesc"
)

// Shared test models. The declaration table is process-wide, so everything
// registers once here.

type testUser struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Age  int      `json:"age"`
	Tags []string `json:"tags,omitempty"`
}

type testBox struct {
	Value any `json:"value"`
}

type testBoxList struct {
	Values any `json:"values"`
}

type testNode struct {
	Value string    `json:"value"`
	Next  *testNode `json:"next,omitempty"`
}

type testEvent struct {
	Name      string          `json:"name"`
	At        strfmt.DateTime `json:"at"`
	Attendees any             `json:"attendees"`
}

type testConfig struct {
	Host string `json:"host"`
	Port int    `json:"port,omitempty"`
}

type testLoose struct {
	ID string `json:"id"`
}

type testPair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

func init() {
	registry.RegisterAggregate[testUser]("User")
	registry.RegisterAggregate[testBox]("Box",
		registry.WithTypeParams("T"),
		registry.WithFieldType("value", typedesc.Var("T")),
	)
	registry.RegisterAggregate[testBoxList]("BoxList",
		registry.WithTypeParams("T"),
		registry.WithFieldType("values", typedesc.List(typedesc.Var("T"))),
	)
	registry.RegisterAggregate[testNode]("Node")
	registry.RegisterAggregate[testEvent]("Event",
		registry.WithFieldType("attendees", typedesc.Set(typedesc.String())),
	)
	registry.RegisterAggregate[testConfig]("Config",
		registry.WithDefault("port", func() any { return int64(8080) }),
	)
	registry.RegisterAggregate[testLoose]("Loose", registry.WithAllowExtra())
	registry.RegisterAggregate[testPair]("Pair")
}

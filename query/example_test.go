package query_test

import (
	"fmt"

	"github.com/LucianoPAlmeida/OGMNeo/query"
)

func ExampleWhere() {
	w := query.NewWhere("name", query.Eq("derp")).
		Or("age", query.Lt(25)).
		And("last", query.Eq("value"))
	fmt.Println(w.Clause())
	// Output: n.name = 'derp' OR n.age < 25 AND n.last = 'value'
}

func ExampleNodeQuery() {
	q := query.NewNode("Person").
		Where(query.NewWhere("age", query.Gte(18)).And("name", query.StartsWith("A"))).
		Return("name", query.IDProperty).
		DescOrderBy("age").
		Limit(10)
	fmt.Println(q.QueryCypher())
	fmt.Println(q.CountCypher())
	// Output:
	// MATCH (n:Person) WHERE n.age >= 18 AND n.name STARTS WITH 'A' RETURN n.name, ID(n) AS id ORDER BY n.age DESC LIMIT 10
	// MATCH (n:Person) WHERE n.age >= 18 AND n.name STARTS WITH 'A' RETURN COUNT(n) AS count
}

func ExampleRelationQuery() {
	q := query.NewRelation("relatedto").
		StartNode(2, "label").
		EndNode(43, "label").
		RelationWhere(query.NewWhere("since", query.In([]int{2016, 2017})))
	fmt.Println(q.QueryPopulatedCypher())
	// Output: MATCH p=(n1:label)-[r:relatedto]->(n2:label) WHERE ID(n1) = 2 AND ID(n2) = 43 AND r.since IN [ 2016 , 2017 ] RETURN r, n1, n2
}

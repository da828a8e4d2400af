package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LucianoPAlmeida/OGMNeo/query"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the statement a query produces",
	}
	cmd.AddCommand(newRenderNodeCmd(), newRenderRelationCmd())
	return cmd
}

func newRenderNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Render a node query",
		Long: `Render the statement for a node query.

Filters look like property:op:value, where op is one of eq, ne, lt, lte,
gt, gte, regex, startswith, endswith, contains, in, exists.

Examples:
  ogmneo render node --label Person --where age:gt:30 --return name --limit 10
  ogmneo render node --label Person --where name:in:ada,bob --count`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			label, _ := flags.GetString("label")
			and, _ := flags.GetStringArray("where")
			or, _ := flags.GetStringArray("or")
			returns, _ := flags.GetStringSlice("return")
			orderBy, _ := flags.GetStringSlice("order-by")
			desc, _ := flags.GetBool("desc")
			limit, _ := flags.GetInt("limit")
			count, _ := flags.GetBool("count")

			where, err := buildWhere(and, or)
			if err != nil {
				return err
			}
			q := query.NewNode(label).Where(where).Return(returns...).Limit(limit)
			if len(orderBy) > 0 {
				q = q.OrderBy(order(desc), orderBy...)
			}

			statement := q.QueryCypher()
			if count {
				statement = q.CountCypher()
			}
			return printStatement(cmd, statement)
		},
	}

	cmd.Flags().String("label", "", "Node label")
	cmd.Flags().StringArray("where", nil, "Filter joined with AND (repeatable)")
	cmd.Flags().StringArray("or", nil, "Filter joined with OR (repeatable)")
	cmd.Flags().StringSlice("return", nil, "Properties to return")
	cmd.Flags().StringSlice("order-by", nil, "Properties to order by")
	cmd.Flags().Bool("desc", false, "Order descending")
	cmd.Flags().Int("limit", 0, "Maximum number of rows")
	cmd.Flags().Bool("count", false, "Render the count statement")
	return cmd
}

func newRenderRelationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relation",
		Short: "Render a relationship query",
		Long: `Render the statement for a relationship query.

Examples:
  ogmneo render relation --type KNOWS --start-id 1 --where since:gt:2010
  ogmneo render relation --type KNOWS --start-label Person --populated
  ogmneo render relation --type KNOWS --nodes end --distinct`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			relType, _ := flags.GetString("type")
			startLabel, _ := flags.GetString("start-label")
			endLabel, _ := flags.GetString("end-label")
			and, _ := flags.GetStringArray("where")
			or, _ := flags.GetStringArray("or")
			startFilters, _ := flags.GetStringArray("start-where")
			endFilters, _ := flags.GetStringArray("end-where")
			returns, _ := flags.GetStringSlice("return")
			orderBy, _ := flags.GetStringSlice("order-by")
			desc, _ := flags.GetBool("desc")
			limit, _ := flags.GetInt("limit")
			count, _ := flags.GetBool("count")
			populated, _ := flags.GetBool("populated")
			nodes, _ := flags.GetString("nodes")
			distinct, _ := flags.GetBool("distinct")

			q := query.NewRelation(relType).StartNodeLabel(startLabel).EndNodeLabel(endLabel)
			if flags.Changed("start-id") {
				id, _ := flags.GetInt64("start-id")
				q = q.StartNodeID(id)
			}
			if flags.Changed("end-id") {
				id, _ := flags.GetInt64("end-id")
				q = q.EndNodeID(id)
			}

			relWhere, err := buildWhere(and, or)
			if err != nil {
				return err
			}
			startWhere, err := buildWhere(startFilters, nil)
			if err != nil {
				return err
			}
			endWhere, err := buildWhere(endFilters, nil)
			if err != nil {
				return err
			}
			q = q.RelationWhere(relWhere).StartNodeWhere(startWhere).EndNodeWhere(endWhere).
				ReturnRelation(returns...).Limit(limit)
			if len(orderBy) > 0 {
				q = q.OrderBy(order(desc), orderBy...)
			}

			var statement string
			switch {
			case count:
				statement = q.CountCypher()
			case nodes != "":
				endpoints, err := query.ParseEndpoints(nodes)
				if err != nil {
					return err
				}
				statement = q.QueryNodesCypher(endpoints, distinct)
			case populated:
				statement = q.QueryPopulatedCypher()
			default:
				statement = q.QueryCypher()
			}
			return printStatement(cmd, statement)
		},
	}

	cmd.Flags().String("type", "", "Relationship type")
	cmd.Flags().Int64("start-id", 0, "Start node id")
	cmd.Flags().Int64("end-id", 0, "End node id")
	cmd.Flags().String("start-label", "", "Start node label")
	cmd.Flags().String("end-label", "", "End node label")
	cmd.Flags().StringArray("where", nil, "Relationship filter joined with AND (repeatable)")
	cmd.Flags().StringArray("or", nil, "Relationship filter joined with OR (repeatable)")
	cmd.Flags().StringArray("start-where", nil, "Start node filter (repeatable)")
	cmd.Flags().StringArray("end-where", nil, "End node filter (repeatable)")
	cmd.Flags().StringSlice("return", nil, "Relationship properties to return")
	cmd.Flags().StringSlice("order-by", nil, "Relationship properties to order by")
	cmd.Flags().Bool("desc", false, "Order descending")
	cmd.Flags().Int("limit", 0, "Maximum number of rows")
	cmd.Flags().Bool("count", false, "Render the count statement")
	cmd.Flags().Bool("populated", false, "Return the endpoint nodes with each relationship")
	cmd.Flags().String("nodes", "", "Return only endpoint nodes: both, start or end")
	cmd.Flags().Bool("distinct", false, "Use DISTINCT with --nodes")
	return cmd
}

func order(desc bool) query.Order {
	if desc {
		return query.Descending
	}
	return query.Ascending
}

func printStatement(cmd *cobra.Command, statement string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"statement": statement})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), statement)
	return err
}

package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/pennywise/pennywise-api/internal/domain/model"
)

// NewSchema builds the executable GraphQL schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"gender":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"profilePicture": &graphql.Field{Type: graphql.String},
		},
	})

	transactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Transaction",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"paymentType": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"category":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"amount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"location":    &graphql.Field{Type: graphql.String},
			"date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					txn, ok := p.Source.(*model.Transaction)
					if !ok {
						return nil, nil
					}
					return txn.OccurredAt, nil
				},
			},
		},
	})

	categoryStatisticsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryStatistics",
		Fields: graphql.Fields{
			"category":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	recurringRuleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RecurringRule",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"description":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"paymentType":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"category":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"amount":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"location":     &graphql.Field{Type: graphql.String},
			"intervalDays": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"nextRunAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"enabled":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	logoutResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LogoutResponse",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	signUpInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"gender":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createTransactionInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"paymentType": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"category":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"location":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	updateTransactionInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"transactionId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"paymentType":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"category":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"amount":        &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"location":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"date":          &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	createRecurringRuleInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateRecurringRuleInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"paymentType":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"category":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"amount":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"location":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"intervalDays": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"startAt":      &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"authUser": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveAuthUser(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveUser(p.Context, stringArg(p.Args, "userId"))
				},
			},
			"transactions": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(transactionType)),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveTransactions(p.Context, intArg(p.Args, "limit"), intArg(p.Args, "offset"))
				},
			},
			"transaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"transactionId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveTransaction(p.Context, stringArg(p.Args, "transactionId"))
				},
			},
			"categoryStatistics": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(categoryStatisticsType)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveCategoryStatistics(p.Context)
				},
			},
			"recurringRules": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(recurringRuleType)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveRecurringRules(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signUpInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveSignUp(p.Context, inputArg(p.Args))
				},
			},
			"login": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveLogin(p.Context, inputArg(p.Args))
				},
			},
			"logout": &graphql.Field{
				Type: logoutResponseType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveLogout(p.Context)
				},
			},
			"createTransaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTransactionInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveCreateTransaction(p.Context, inputArg(p.Args))
				},
			},
			"updateTransaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTransactionInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveUpdateTransaction(p.Context, inputArg(p.Args))
				},
			},
			"deleteTransaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"transactionId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveDeleteTransaction(p.Context, stringArg(p.Args, "transactionId"))
				},
			},
			"createRecurringRule": &graphql.Field{
				Type: recurringRuleType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createRecurringRuleInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveCreateRecurringRule(p.Context, inputArg(p.Args))
				},
			},
			"setRecurringRuleEnabled": &graphql.Field{
				Type: recurringRuleType,
				Args: graphql.FieldConfigArgument{
					"ruleId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"enabled": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveSetRecurringRuleEnabled(p.Context, stringArg(p.Args, "ruleId"), boolArg(p.Args, "enabled"))
				},
			},
			"deleteRecurringRule": &graphql.Field{
				Type: recurringRuleType,
				Args: graphql.FieldConfigArgument{
					"ruleId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.resolveDeleteRecurringRule(p.Context, stringArg(p.Args, "ruleId"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// inputArg unwraps the conventional single "input" argument.
func inputArg(args map[string]any) map[string]any {
	if m, ok := args["input"].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func boolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

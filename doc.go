// Package dispatch provides type-keyed command and query buses for CQRS
// applications.
//
// A bus decouples the producers of commands and queries from the handlers
// that execute them. Handlers declare the single envelope type they accept
// and are registered once, during bootstrap; dispatch resolves an envelope's
// concrete type against the registry and forwards the handler's asynchronous
// result unchanged.
//
// # Envelopes
//
// Concrete commands and queries embed CommandEnvelope or QueryEnvelope,
// which assign a UUID identifier and creation timestamp at construction:
//
//	type CreateUser struct {
//	    dispatch.CommandEnvelope
//	    Name  string
//	    Email string
//	}
//
//	cmd := CreateUser{
//	    CommandEnvelope: dispatch.NewCommandEnvelope("admin-7"),
//	    Name:            "Ada",
//	    Email:           "ada@example.com",
//	}
//
// # Dispatch
//
// Handlers are built from plain typed functions and registered on a bus:
//
//	bus := dispatch.NewCommandBus()
//	err := bus.RegisterHandler(dispatch.NewCommandHandler(
//	    func(ctx context.Context, cmd CreateUser) (UserID, error) {
//	        return users.Create(ctx, cmd.Name, cmd.Email)
//	    },
//	    dispatch.ExactNaming,
//	))
//
//	results := bus.Execute(ctx, cmd)
//	id, err := dispatch.Await[UserID](ctx, results)
//
// Execute returns immediately; the handler function runs on its own
// goroutine. Executing an envelope type with no registered handler yields a
// failed result carrying *HandlerNotFoundError without touching any handler.
// Registering a second handler for an already-registered type fails with
// *DuplicateHandlerError and is meant to abort bootstrap.
package dispatch

// Package core provides the business logic for the inventory forms.
//
// It contains the domain records and the rules that admit them, independent
// of any UI or transport layer. The web handlers and the terminal UI both use
// it through the [Inventory] interface.
//
// # Records
//
// [Product] and [Buyer] are transient while their ID is zero. The store
// assigns the ID on insert and it never changes afterwards; inserting a
// persisted value returns [ErrAlreadyPersisted]. There is no update path.
//
// # Validation
//
// [ValidateProduct] and [ValidateBuyer] check raw form text in a fixed order
// and return the first failure as a [*ValidationError] naming the field:
//
//	p, err := core.ValidateProduct(core.ProductInput{
//	    Name:     "Widget",
//	    Price:    "9.99",
//	    Quantity: "5",
//	}, core.ProductRules{})
//
// # Persistence
//
// [Service] runs one statement per call on a fresh connection from the
// database provider:
//
//   - InsertProduct / InsertBuyer: INSERT ... RETURNING id
//   - ListProducts: optional case-insensitive substring filter on name or category
//   - DeleteProduct: returns rows affected; zero is a benign not-found
//
// Writes pass through a [WriteLimiter]; when every slot stays busy past the
// wait timeout the write fails with [ErrWritesBusy].
//
// # Listing
//
// [ProductView] holds the rows shown in a product table, reloads them when
// the filter changes, and binds a [DeleteAction] to each row.
//
// # Error Handling
//
// Storage failures are wrapped in [*StorageError] with a reference UUID that
// is also logged. [MapError] turns any error into a [UserMessage] with a code:
//
//   - DB001-DB010: Store errors (constraints, availability, locking)
//   - VAL002-VAL009: Validation errors
//   - REQ001-REQ004: Request errors (cancelled, timed out)
package core

package api

// FailureMessage is the user facing text shown when a request of this action fails.
func (a Action) FailureMessage() string {
	switch a {
	case ActionList:
		return "Error fetching products"
	case ActionGet:
		return "Product not found"
	case ActionTypes:
		return "Error fetching product types"
	case ActionAdd:
		return "Error adding product"
	case ActionDelete:
		return "Error deleting product"
	default:
		return "Request failed"
	}
}

// SuccessMessage is the text shown when a request of this action succeeds.
// Only mutating actions announce success.
func (a Action) SuccessMessage() string {
	switch a {
	case ActionAdd:
		return "Product added successfully"
	case ActionDelete:
		return "Product deleted successfully"
	default:
		return ""
	}
}

package products

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jasith06/jlink-pos-web/apperr"
)

// Product is one catalog entry. The document id doubles as the canonical
// product code for direct lookups.
type Product struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Price          float64   `json:"price" bson:"price"`
	WholesalePrice float64   `json:"wholesalePrice,omitempty" bson:"wholesalePrice,omitempty"`
	Quantity       int       `json:"quantity" bson:"quantity"`
	ProductCode    string    `json:"productCode" bson:"productCode"`
	Category       string    `json:"category,omitempty" bson:"category,omitempty"`
	MFD            string    `json:"mfd,omitempty" bson:"mfd,omitempty"`
	EXP            string    `json:"exp,omitempty" bson:"exp,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Catalog looks up and mutates the product inventory.
type Catalog struct {
	coll *mongo.Collection
}

func NewCatalog(coll *mongo.Collection) *Catalog {
	return &Catalog{coll: coll}
}

// FindByCode resolves a scanned code to a product. Lookup order: document
// id, then the productCode field, then a name-contains search. A match
// with no stock left is a conflict, not a hit.
func (c *Catalog) FindByCode(ctx context.Context, code string) (*Product, error) {
	clean := strings.ToUpper(strings.TrimSpace(code))
	if clean == "" {
		return nil, apperr.NewValidation("code", "product code is required")
	}

	var p Product
	err := c.coll.FindOne(ctx, bson.M{"_id": clean}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		err = c.coll.FindOne(ctx, bson.M{"productCode": clean}).Decode(&p)
	}
	if err == mongo.ErrNoDocuments {
		err = c.coll.FindOne(ctx, bson.M{"name": bson.M{
			"$regex": regexEscape(clean), "$options": "i",
		}}).Decode(&p)
	}
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NewNotFound("Product not found: " + clean)
	}
	if err != nil {
		return nil, apperr.NewUpstream("product lookup failed", err)
	}

	if p.Quantity <= 0 {
		return nil, apperr.NewConflict(p.Name + " is out of stock")
	}
	return &p, nil
}

// Decrement reduces a product's stock by the sold quantity, floored at
// zero. There is no compare-and-set: the POS guarantees one operator.
func (c *Catalog) Decrement(ctx context.Context, productID string, by int) (int, error) {
	var p Product
	if err := c.coll.FindOne(ctx, bson.M{"_id": productID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, apperr.NewNotFound("Product not found: " + productID)
		}
		return 0, apperr.NewUpstream("product lookup failed", err)
	}

	newQty := p.Quantity - by
	if newQty < 0 {
		newQty = 0
	}

	_, err := c.coll.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{"quantity": newQty, "updatedAt": time.Now()},
	})
	if err != nil {
		return 0, apperr.NewUpstream("inventory update failed", err)
	}
	return newQty, nil
}

func regexEscape(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

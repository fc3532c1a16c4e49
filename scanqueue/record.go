package scanqueue

// ScanRecord is one device-submitted QR read waiting for, or having
// completed, delivery to the POS client.
type ScanRecord struct {
	ID          string `json:"id" bson:"id"`
	Payload     string `json:"payload" bson:"payload"`
	ProductCode string `json:"productCode" bson:"productCode"`
	DeviceID    string `json:"deviceId" bson:"deviceId"`
	ReceivedAt  int64  `json:"receivedAt" bson:"receivedAt"` // epoch millis
	Processed   bool   `json:"processed" bson:"processed"`
	ProcessedAt int64  `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

package domain

// Listing is an Airbnb-style listing document. OID is the system identifier,
// ID the optional application-defined identifier.
type Listing struct {
	OID                         string   `json:"_id"`
	ID                          string   `json:"id,omitempty"`
	Name                        string   `json:"NAME,omitempty"`
	HostIdentityVerified        string   `json:"host_identity_verified,omitempty"`
	Neighbourhood               string   `json:"neighbourhood,omitempty"`
	Lat                         string   `json:"lat,omitempty"`
	Long                        string   `json:"long,omitempty"`
	Country                     string   `json:"country,omitempty"`
	InstantBookable             string   `json:"instant_bookable,omitempty"`
	CancellationPolicy          string   `json:"cancellation_policy,omitempty"`
	Price                       string   `json:"price,omitempty"`
	HouseRules                  string   `json:"house_rules,omitempty"`
	License                     string   `json:"license,omitempty"`
	PropertyType                string   `json:"property_type,omitempty"`
	Thumbnail                   string   `json:"thumbnail,omitempty"`
	Images                      []string `json:"images"`
	HostID                      string   `json:"hostId,omitempty"`
	HostName                    string   `json:"hostName,omitempty"`
	NeighbourhoodGroup          string   `json:"neighbourhoodGroup,omitempty"`
	ServiceFee                  string   `json:"serviceFee,omitempty"`
	RoomType                    string   `json:"roomType,omitempty"`
	ConstructionYear            string   `json:"constructionYear,omitempty"`
	MinimumNights               string   `json:"minimumNights,omitempty"`
	NumberOfReviews             string   `json:"numberOfReviews,omitempty"`
	ReviewsPerMonth             string   `json:"reviewsPerMonth,omitempty"`
	ReviewRateNumber            string   `json:"reviewRateNumber,omitempty"`
	CalculatedHostListingsCount string   `json:"calculatedHostListingsCount,omitempty"`
	Availability365             string   `json:"availability365,omitempty"`
	LastReview                  string   `json:"lastReview,omitempty"`
	CountryCode                 string   `json:"countryCode,omitempty"`
}

// ListingImagesField is the only non-string listing attribute.
const ListingImagesField = "images"

// ListingStringFields are the writable string attributes of a listing, keyed
// by their document name.
var ListingStringFields = []string{
	"id", "NAME", "host_identity_verified", "neighbourhood", "lat", "long",
	"country", "instant_bookable", "cancellation_policy", "price",
	"house_rules", "license", "property_type", "thumbnail", "hostId",
	"hostName", "neighbourhoodGroup", "serviceFee", "roomType",
	"constructionYear", "minimumNights", "numberOfReviews", "reviewsPerMonth",
	"reviewRateNumber", "calculatedHostListingsCount", "availability365",
	"lastReview", "countryCode",
}

// ListingSortFields is the sort whitelist for listings.
var ListingSortFields = func() map[string]struct{} {
	fields := make(map[string]struct{}, len(ListingStringFields)+1)
	fields["_id"] = struct{}{}
	for _, f := range ListingStringFields {
		fields[f] = struct{}{}
	}
	return fields
}()

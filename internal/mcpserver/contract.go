package mcpserver

// BookingRequestContract describes the canonical JSON booking request that
// LLM consumers must pass to the book_itinerary tool.
const BookingRequestContract = `# Skyroute Booking Request Contract

The ` + "`" + `booking` + "`" + ` argument of ` + "`" + `book_itinerary` + "`" + ` is a JSON object with this shape.

## Structure

` + "```" + `json
{
  "holder": {
    "given_name": "Frodo",            // REQUIRED
    "paternal_surname": "Baggins",    // REQUIRED
    "maternal_surname": "",           // OPTIONAL
    "birth_date": "2968-09-22",       // REQUIRED - YYYY-MM-DD
    "nationality": "Shire",           // REQUIRED
    "category": "general",            // REQUIRED - must already exist in the catalog
    "email": "frodo@shire.me",        // REQUIRED - globally unique
    "phone": "+1 555 000 1111",       // REQUIRED - globally unique
    "seat": ""                        // OPTIONAL - randomized when empty
  },
  "companions": [],                   // OPTIONAL - same shape as holder
  "path": ["Shire", "Isengard"],      // REQUIRED - itinerary nodes in travel order, min 2
  "flight_date": "2026-10-01",        // REQUIRED - YYYY-MM-DD or YYYY-MM-DD HH:MM:SS
  "fare_class": "",                   // OPTIONAL
  "contact_email": "",                // OPTIONAL - overrides the holder's email
  "contact_phone": ""                 // OPTIONAL - overrides the holder's phone
}
` + "```" + `

## Rules

1. **Categories are strict.** The holder's and every companion's category must
   already exist. Register new ones via the ` + "`" + `ensure_category` + "`" + ` tool first.
2. **Every consecutive pair of path nodes** must be present in the route
   catalogs; an uncatalogued leg fails the whole booking.
3. **The booking is atomic.** Holder, reservation, and segments commit together
   or not at all. Companions are registered after the commit and may fail
   individually without voiding the booking; check the ` + "`" + `companions` + "`" + ` field of
   the result.
4. **Email and phone are unique** across all travelers. A duplicate aborts the
   booking with a uniqueness error naming the field.
5. **The result carries the reservation code** (6 uppercase alphanumerics); use
   it with ` + "`" + `get_booking` + "`" + ` to read the full ticketing payload.
`

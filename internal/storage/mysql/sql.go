package mysql

const insertEnquirySQL = `
INSERT INTO enquiries
  (id, name, email, phone, city, service, message, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// CATALOG READS
// -----------------------------------------------------------------------------

// features, process_steps, keywords and areas are JSON arrays.
const serviceColumns = `slug, name, short_description, description, features, process_steps, keywords`

const getServiceSQL = `SELECT ` + serviceColumns + ` FROM services WHERE slug = ?`

const listServicesSQL = `SELECT ` + serviceColumns + ` FROM services ORDER BY position, slug`

const cityColumns = `slug, name, state, tier, areas`

const getCitySQL = `SELECT ` + cityColumns + ` FROM cities WHERE slug = ?`

const listCitiesSQL = `SELECT ` + cityColumns + ` FROM cities ORDER BY position, slug`

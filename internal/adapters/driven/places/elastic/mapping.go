package elastic

// indexMapping is the mapping used when the index does not exist.
const indexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "place_id":          {"type": "keyword"},
      "name":              {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "formatted_address": {"type": "text"},
      "types":             {"type": "keyword"},
      "business_status":   {"type": "keyword"},
      "rating":            {"type": "float"},
      "user_ratings_total":{"type": "integer"},
      "location":          {"type": "geo_point"},
      "geometry":          {"type": "object", "enabled": false},
      "opening_hours":     {"type": "object", "enabled": false}
    }
  }
}`

package anilist

const byIDQuery = `
query ($id: Int) {
	Media (id: $id, type: ANIME) {
		id
		idMal
		title {
			romaji
			english
			native
		}
		synonyms
		episodes
		status
		siteUrl
	}
}
`
